// Package jsonfile keeps users and assessments in flat JSON documents on disk.
//
// users.json holds one array of users with their exams nested inside.
// Every mutation is a read-modify-write of the whole document performed under
// a store-wide mutex, and the new document replaces the old one via rename so
// readers never observe a half-written file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
)

const (
	usersFile       = "users.json"
	assessmentsFile = "assessments.json"
)

type Store struct {
	dir    string
	logger *slog.Logger

	usersMu       sync.Mutex
	assessmentsMu sync.Mutex

	users       *userStore
	assessments *assessmentStore
}

// New opens (and creates if needed) a store rooted at dir
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}

	s := &Store{dir: dir, logger: logger}
	s.users = &userStore{store: s}
	s.assessments = &assessmentStore{store: s}
	return s, nil
}

func (s *Store) User() repositories.UserRepository {
	return s.users
}

func (s *Store) Assessment() repositories.AssessmentRepository {
	return s.assessments
}

// Ping checks that the data directory is still reachable
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readDocument decodes a JSON array file into dst. A missing or empty file leaves dst untouched.
func (s *Store) readDocument(name string, dst interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// writeDocument writes to a temp file in the same directory and renames it over the target
func (s *Store) writeDocument(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	s.logger.Debug("Wrote data file", "file", name, "bytes", len(data))
	return nil
}
