// ABOUTME: Template and Exercise models for workout blueprints.
// ABOUTME: A template owns ordered exercises; positions are append-only.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Template is a reusable workout blueprint: a named collection of
// exercises with target set counts.
type Template struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	Exercises []Exercise `json:"exercises,omitempty" yaml:"exercises,omitempty"` // Populated when fetching full template
}

// NewTemplate creates a new Template with generated UUID and current timestamp.
func NewTemplate(name string) *Template {
	return &Template{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// Validate checks the template fields before any write.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template name must not be blank", ErrInvalidInput)
	}
	return nil
}

// Exercise is one movement definition within a template. Position is
// the display and logging order; positions within a template are
// assigned max+1 on append and never reused after a delete.
type Exercise struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	TemplateID uuid.UUID `json:"template_id" yaml:"template_id"`
	Name       string    `json:"name" yaml:"name"`
	TargetSets int       `json:"target_sets" yaml:"target_sets"`
	Position   int       `json:"position" yaml:"position"`
}

// NewExercise creates a new Exercise for the given template. Position
// is assigned by the store at insert time.
func NewExercise(templateID uuid.UUID, name string, targetSets int) *Exercise {
	return &Exercise{
		ID:         uuid.New(),
		TemplateID: templateID,
		Name:       strings.TrimSpace(name),
		TargetSets: targetSets,
	}
}

// Validate checks the exercise fields before any write.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: exercise name must not be blank", ErrInvalidInput)
	}
	if e.TargetSets < 1 {
		return fmt.Errorf("%w: target sets must be at least 1, got %d", ErrInvalidInput, e.TargetSets)
	}
	return nil
}
