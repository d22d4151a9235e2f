package core

import (
	"context"
	"io"
)

type (
	// UploadedFile describes a stored binary and where it can be fetched back.
	UploadedFile struct {
		Filename string `json:"filename"`
		Mimetype string `json:"mimetype"`
		Encoding string `json:"encoding"`
		URL      string `json:"url"`
	}

	// FileStore persists uploaded binaries under a generated unique name.
	FileStore interface {
		Save(ctx context.Context, ownerID, filename, mimetype, encoding string, r io.Reader) (UploadedFile, error)
	}
)
