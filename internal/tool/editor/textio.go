package editor

import (
	"errors"
	"io/fs"
	"os"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
)

const defaultPerm os.FileMode = 0o644

// stat classifies a missing path as NotFound and anything else as IOFailure.
func (e *Editor) stat(abs string) (os.FileInfo, error) {
	info, err := e.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(NotFound, abs, "The path %s does not exist. Please provide a valid path.", abs)
		}
		return nil, wrapError(abs, "Failed to access "+abs, err)
	}
	return info, nil
}

// readText reads and decodes a regular file.
func (e *Editor) readText(abs, encoding string) (content.Document, os.FileInfo, error) {
	info, err := e.stat(abs)
	if err != nil {
		return content.Document{}, nil, err
	}
	if info.IsDir() {
		return content.Document{}, nil, newError(InvalidParameter, abs, "The path %s is a directory and only the `view` command can be used on directories.", abs)
	}
	if info.Size() > e.maxFileSize {
		return content.Document{}, nil, newError(InvalidParameter, abs, "File %s is too large (%d bytes). Maximum allowed size is %d bytes.", abs, info.Size(), e.maxFileSize)
	}

	data, err := e.fs.ReadFile(abs)
	if err != nil {
		return content.Document{}, nil, wrapError(abs, "Failed to read "+abs, err)
	}
	if content.IsBinaryContent(data, e.sampleSize) {
		return content.Document{}, nil, newError(InvalidParameter, abs, "The file %s appears to be binary. Only text files can be viewed or edited.", abs)
	}

	text, err := charset.Decode(data, encoding)
	if err != nil {
		return content.Document{}, nil, wrapError(abs, "Failed to decode "+abs, err)
	}
	return content.ParseDocument(text), info, nil
}

// writeText encodes raw text and replaces the file atomically.
func (e *Editor) writeText(abs, raw, encoding string, perm os.FileMode) error {
	data, err := e.encodeText(abs, raw, encoding)
	if err != nil {
		return err
	}
	return e.writeBytes(abs, data, perm)
}

// encodeText converts raw text to bytes and enforces the size limit.
func (e *Editor) encodeText(abs, raw, encoding string) ([]byte, error) {
	data, err := charset.Encode(raw, encoding)
	if err != nil {
		return nil, wrapError(abs, "Failed to write "+abs, err)
	}
	if int64(len(data)) > e.maxFileSize {
		return nil, newError(InvalidParameter, abs, "Resulting file %s would be too large (%d bytes). Maximum allowed size is %d bytes.", abs, len(data), e.maxFileSize)
	}
	return data, nil
}

func (e *Editor) writeBytes(abs string, data []byte, perm os.FileMode) error {
	if err := e.fs.WriteFileAtomic(abs, data, perm); err != nil {
		return wrapError(abs, "Failed to write "+abs, err)
	}
	return nil
}

func permOf(info os.FileInfo) os.FileMode {
	if info == nil {
		return defaultPerm
	}
	return info.Mode().Perm()
}
