package files

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalFiles keeps files under a root directory, one folder per execution id.
// It is used during development, in local mode and by the cli.
type LocalFiles struct {
	root string
}

func newLocalFiles(config *LocalConfig) (LocalFiles, error) {
	if config.LocalRootPath == "" {
		return LocalFiles{}, errors.New("a local root path is required")
	}

	return NewLocalFiles(config.LocalRootPath), nil
}

// NewLocalFiles returns a handler rooted at rootPath.
func NewLocalFiles(rootPath string) LocalFiles {
	return LocalFiles{root: rootPath}
}

func (l LocalFiles) path(id string, name string) string {
	return filepath.Join(l.root, id, name)
}

// WriteFile replaces the file in a single rename so a reader polling for the
// result never sees it half written.
func (l LocalFiles) WriteFile(file *File) error {
	target := l.path(file.ID, file.Name)
	directory := filepath.Dir(target)

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", file.Name)
	}

	tmp, err := os.CreateTemp(directory, "."+file.Name+".*")

	if err != nil {
		return errors.Wrapf(err, "failed to create %s file", file.Name)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(file.Data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", file.Name)
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", file.Name)
	}

	return errors.Wrapf(os.Rename(tmp.Name(), target), "failed to store %s", file.Name)
}

func (l LocalFiles) GetFile(id string, name string) ([]byte, error) {
	data, err := os.ReadFile(l.path(id, name))

	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "cannot locate %s for execution %s", name, id)
	}

	return data, errors.Wrapf(err, "failed to read %s for execution %s", name, id)
}
