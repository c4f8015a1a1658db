package store

import (
	"errors"
	"io/fs"

	"yukbul/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithMigrations registers a goose migration tree applied to Postgres on Open.
// Files must sit at the root of fsys.
func WithMigrations(fsys fs.FS) Option {
	return func(s *Store) error {
		if fsys == nil {
			return errors.New("store: nil migrations fs")
		}
		s.migrations = append(s.migrations, fsys)
		return nil
	}
}
