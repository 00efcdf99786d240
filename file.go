package mdnum

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile reads a Markdown file. Failures are returned as *FileError with
// Kind ErrFileNotFound or ErrFileRead.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := ErrFileRead
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrFileNotFound
		}
		return nil, &FileError{Op: "read", Path: path, Kind: kind, Err: err}
	}
	return data, nil
}

// WriteFile replaces path with data through a temporary file in the same
// directory. An existing file keeps its permissions. Failures are returned as
// *FileError with Kind ErrFileWrite.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		return &FileError{Op: "write", Path: path, Kind: ErrFileWrite, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.New("path is a directory")
		}
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tempFile, err := os.CreateTemp(dir, ".mdnum-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
	}()
	if _, err := tempFile.Write(data); err != nil {
		return err
	}
	if err := tempFile.Sync(); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempFile.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tempFile.Name(), path)
}

// NumberFile numbers the headings of the file at in and writes the result to
// out, or back to in when out is empty. Nothing is written when out already
// holds the numbered content.
func NumberFile(in, out string, opts ...Option) (Result, error) {
	src, err := ReadFile(in)
	if err != nil {
		return Result{}, err
	}
	res, err := Number(src, opts...)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = in
		}
		return Result{}, err
	}
	if out == "" {
		out = in
	}
	if out == in && bytes.Equal(res.Output, src) {
		return res, nil
	}
	if out != in {
		if existing, err := os.ReadFile(out); err == nil && bytes.Equal(existing, res.Output) {
			return res, nil
		}
	}
	if err := WriteFile(out, res.Output); err != nil {
		return res, err
	}
	return res, nil
}
