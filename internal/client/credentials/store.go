// Package credentials persists the erpctl session between invocations.
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"erp/internal/client/session"

	"github.com/pkg/errors"
)

const (
	// DefaultConfigDir is the directory under the user config dir.
	DefaultConfigDir = "erpctl"
	// FileName holds the server URL and the current session.
	FileName = "session.json"

	filePermissions = 0o600
	dirPermissions  = 0o700
)

// File is the on-disk layout.
type File struct {
	ServerURL string            `json:"server_url,omitempty"`
	Session   *session.Snapshot `json:"session,omitempty"`
}

// Store reads and writes one credentials file.
type Store struct {
	path string
}

// NewStore uses $XDG_CONFIG_HOME (or ~/.config)/erpctl/session.json.
func NewStore() (*Store, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "cannot determine home directory")
		}
		configHome = filepath.Join(home, ".config")
	}

	return NewStoreAt(filepath.Join(configHome, DefaultConfigDir, FileName)), nil
}

// NewStoreAt uses an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns an empty File when nothing has been saved yet.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read credentials")
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", s.path)
	}

	return &file, nil
}

// Save writes the file with owner-only permissions, replacing it atomically.
func (s *Store) Save(file *File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return errors.Wrap(err, "cannot create config directory")
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode credentials")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePermissions); err != nil {
		return errors.Wrap(err, "failed to write credentials")
	}

	return errors.Wrap(os.Rename(tmp, s.path), "failed to replace credentials")
}
