package upload

import (
	"context"
	"io"
	"strings"
	"time"
)

// Object is an opened stored file. Callers must close Body.
type Object struct {
	Name        string
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Storage keeps uploaded files under flat names.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// Open fails with ErrFileNotFound for absent files and for names that
	// are not plain file names.
	Open(ctx context.Context, name string) (*Object, error)
	// List returns stored names in lexical order.
	List(ctx context.Context) ([]string, error)
}

// ValidName reports whether name is a plain file name that cannot escape
// the storage root.
func ValidName(name string) bool {
	if name == "" || len(name) > 255 || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
