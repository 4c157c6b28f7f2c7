// ABOUTME: Data migration between workout storage backends.
// ABOUTME: Copies templates, exercises, sessions, and sets from source to destination.

package storage

import (
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Templates int
	Exercises int
	Sessions  int
	Sets      int
}

// MigrateData copies all data from src to dst storage, preserving IDs,
// positions, and timestamps. The destination should be empty before
// calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := dst.ImportData(data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	summary := &MigrateSummary{
		Templates: len(data.Templates),
		Sessions:  len(data.Sessions),
	}
	for _, t := range data.Templates {
		summary.Exercises += len(t.Exercises)
	}
	for _, s := range data.Sessions {
		summary.Sets += len(s.Sets)
	}
	return summary, nil
}
