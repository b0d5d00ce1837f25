package upload

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxFiles is the number of files accepted per request.
const DefaultMaxFiles = 10

// Uploader stores a batch of multipart files under generated names.
type Uploader struct {
	storage  Storage
	namer    *Namer
	maxFiles int
}

func NewUploader(storage Storage, namer *Namer, maxFiles int) *Uploader {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &Uploader{storage: storage, namer: namer, maxFiles: maxFiles}
}

// Save stores files and returns their generated names in submission order.
// Names are allocated before any write starts; writes run concurrently and
// the first failure aborts the batch. Files written before the failure are
// left in place.
func (u *Uploader) Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > u.maxFiles {
		return nil, errors.Wrapf(ErrTooManyFiles, "got %d, limit is %d", len(files), u.maxFiles)
	}

	names := make([]string, len(files))
	for i, fh := range files {
		names[i] = u.namer.Name(fh.Filename)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		name, fh := names[i], fh
		g.Go(func() error {
			return u.saveOne(gctx, name, fh)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	zap.L().Info("files uploaded", zap.Strings("filenames", names))
	return names, nil
}

func (u *Uploader) saveOne(ctx context.Context, name string, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return errors.Wrapf(err, "open upload %s", fh.Filename)
	}
	defer f.Close()

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectReader(f); err == nil {
		contentType = mt.String()
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "rewind upload %s", fh.Filename)
	}
	return u.storage.Save(ctx, name, f, fh.Size, contentType)
}
