package mdnum

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound reports a missing input file.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileRead reports a failure reading an input file.
	ErrFileRead = errors.New("file read failed")
	// ErrFileWrite reports a failure writing an output file.
	ErrFileWrite = errors.New("file write failed")
)

// FileError records a failed file operation. It matches its Kind and the
// underlying cause with errors.Is.
type FileError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// InputError reports bytes that cannot be treated as Markdown text.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return fmt.Sprintf("invalid input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
