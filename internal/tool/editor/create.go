package editor

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// create writes a new file. An existing empty file may be created over; any
// other existing path is refused. No undo checkpoint is recorded.
func (e *Editor) create(cmd CreateCommand, abs, encoding string) (*Result, error) {
	info, err := e.fs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return nil, newError(AlreadyExists, abs, "The path %s is a directory. Cannot overwrite directories using command `create`.", abs)
	case err == nil && info.Size() > 0:
		return nil, newError(AlreadyExists, abs, "File already exists at: %s. Cannot overwrite files using command `create`.", abs)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, wrapError(abs, "Failed to access "+abs, err)
	}

	if err := e.fs.EnsureDirs(filepath.Dir(abs)); err != nil {
		return nil, wrapError(abs, "Failed to create parent directories for "+abs, err)
	}

	if err := e.writeText(abs, cmd.Text, encoding, permOf(info)); err != nil {
		return nil, err
	}

	return &Result{
		Message:  createHeader(abs),
		Encoding: encoding,
		Diff:     unifiedDiff(abs, "", cmd.Text),
	}, nil
}
