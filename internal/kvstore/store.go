// ABOUTME: Badger-backed key/value storage for workout data.
// ABOUTME: One key prefix per entity kind, JSON values, manual cascades.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/gymlog/internal/models"
	"github.com/harperreed/gymlog/internal/storage"
)

const (
	TemplatePrefix = "template:"
	ExercisePrefix = "exercise:"
	SessionPrefix  = "session:"
	SetPrefix      = "set:"
)

// Store provides Badger-backed storage for workout data. Badger has no
// foreign keys, so cascade deletes walk the affected prefixes inside a
// single transaction.
type Store struct {
	db *badger.DB
}

// Compile-time check that Store implements storage.Repository.
var _ storage.Repository = (*Store)(nil)

// Open opens or creates a Badger database in the given directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's default logger writes to stderr

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// persistErr tags a failed durable write so callers can match it with
// errors.Is(err, models.ErrPersistence) while keeping the driver error.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(models.ErrPersistence, err))
}

// put JSON-encodes v and stores it under key within txn.
func put(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// get retrieves and decodes the value under key within txn.
func get[T any](txn *badger.Txn, key string) (*T, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &result, nil
}

// listPrefix decodes every value stored under the given key prefix.
func listPrefix[T any](txn *badger.Txn, prefix string) ([]*T, error) {
	var results []*T
	prefixBytes := []byte(prefix)

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
		data, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var result T
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", it.Item().Key(), err)
		}
		results = append(results, &result)
	}

	return results, nil
}

// resolveKey finds the unique full key under typePrefix whose ID starts
// with idOrPrefix. Returns ErrNotFound for no match, ErrInvalidInput
// for an ambiguous one.
func resolveKey(txn *badger.Txn, typePrefix, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		key := typePrefix + idOrPrefix
		if _, err := txn.Get([]byte(key)); err != nil {
			if err == badger.ErrKeyNotFound {
				return "", fmt.Errorf("%s: %w", idOrPrefix, models.ErrNotFound)
			}
			return "", err
		}
		return key, nil
	}

	searchPrefix := []byte(typePrefix + idOrPrefix)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var matches []string
	for it.Seek(searchPrefix); it.ValidForPrefix(searchPrefix); it.Next() {
		matches = append(matches, string(it.Item().KeyCopy(nil)))
		if len(matches) > 1 {
			break
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", idOrPrefix, models.ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w: ambiguous prefix %s matches multiple records", models.ErrInvalidInput, idOrPrefix)
	}

	return matches[0], nil
}
