// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store reads, overwrites and removes the files a mutation touches.
//
// Writes replace the whole file in place. There is no temp-file rename, so a
// crash mid-write can leave a truncated file; Backup exists for callers that
// want a copy to fall back on.
package store

import (
	"context"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BackupSuffix is appended to a path to name its backup copy
const BackupSuffix = ".bak"

// ErrNotText is returned when file content is not valid UTF-8
var ErrNotText = errors.Base("file is not valid UTF-8 text")

// 💾 FileStore handles all file system operations of a mutation run
type FileStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	DeleteFile(ctx context.Context, path string) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// Restorer is implemented by stores that can put a backup copy back in place
type Restorer interface {
	RestoreFile(ctx context.Context, path string) error
}

// 🔧 OSStore implements FileStore on the local disk
type OSStore struct {
	// Backup copies each file to path+BackupSuffix before it is overwritten or removed
	Backup bool
}

// 🏭 New creates a new store
func New(backup bool) *OSStore {
	return &OSStore{Backup: backup}
}

// ReadFile reads the whole file and rejects content that is not UTF-8
func (s *OSStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(content) {
		return nil, errors.WithStack(ErrNotText)
	}
	return content, nil
}

// WriteFile overwrites the file, keeping its permissions when it exists
func (s *OSStore) WriteFile(ctx context.Context, path string, content []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if s.Backup {
		if err := s.BackupFile(ctx, path); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, content, mode); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("file written")
	return nil
}

// DeleteFile removes the file
func (s *OSStore) DeleteFile(ctx context.Context, path string) error {
	if s.Backup {
		if err := s.BackupFile(ctx, path); err != nil {
			return err
		}
	}

	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("file deleted")
	return nil
}

// FileExists reports whether a regular file exists at path
func (s *OSStore) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// BackupFile copies path to path+BackupSuffix. Missing files are not an error.
func (s *OSStore) BackupFile(ctx context.Context, path string) error {
	backupPath := path + BackupSuffix

	// Only backup if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(path, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", backupPath).Msg("backup created")
	return nil
}

// RestoreFile copies the backup back over path and removes the backup.
// It refuses to run when backups are off so a stale .bak is never restored.
func (s *OSStore) RestoreFile(ctx context.Context, path string) error {
	if !s.Backup {
		return errors.Errorf("backups are disabled")
	}
	backupPath := path + BackupSuffix

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", backupPath).Msg("backup restored")
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}
