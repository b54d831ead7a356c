// Package storefile persists the session token as a single file under the
// console's data folder.
package storefile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-console-core/session"
)

const tokenFileName = "console.token"

var _ session.Store = (*FileStore)(nil)

type FileStore struct {
	path string
}

func New(dataFolder string) *FileStore {
	return &FileStore{path: filepath.Join(dataFolder, tokenFileName)}
}

func (fs *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "[Save] creating data folder")
	}
	if err := os.WriteFile(fs.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "[Save] writing token file")
	}
	return nil
}

func (fs *FileStore) Load() (string, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "[Load] reading token file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Clear] removing token file")
	}
	return nil
}
