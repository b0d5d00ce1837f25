package upload

import "github.com/pkg/errors"

var (
	ErrNoFiles      = errors.New("no files uploaded")
	ErrTooManyFiles = errors.New("too many files")
	ErrFileNotFound = errors.New("file not found")
)
