// Package filestore persists uploaded binaries on the local filesystem; the
// HTTP server serves them back under the public /uploads path.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/dottech/backend/core"
)

type diskStore struct {
	dir       string
	urlPrefix string
}

var _ core.FileStore = (*diskStore)(nil)

// NewDiskStore returns a store rooted at dir; stored files are addressed as
// <urlPrefix>/<generated name>.
func NewDiskStore(dir, urlPrefix string) (core.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &diskStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *diskStore) Save(ctx context.Context, ownerID, filename, mimetype, encoding string, r io.Reader) (core.UploadedFile, error) {
	// owner id + timestamp keep concurrent uploads of the same file apart
	name := fmt.Sprintf("%s-%d-%s", ownerID, time.Now().UnixNano()/int64(time.Millisecond), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return core.UploadedFile{}, errors.Wrap(err, "creating file")
	}

	if _, err = io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(path) // drop the partial write
		return core.UploadedFile{}, errors.Wrap(err, "writing file")
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(path)
		return core.UploadedFile{}, errors.Wrap(err, "closing file")
	}

	if err = ctx.Err(); err != nil {
		_ = os.Remove(path)
		return core.UploadedFile{}, err
	}

	return core.UploadedFile{
		Filename: name,
		Mimetype: mimetype,
		Encoding: encoding,
		URL:      s.urlPrefix + "/" + name,
	}, nil
}
