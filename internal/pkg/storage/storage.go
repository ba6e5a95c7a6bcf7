package storage

import (
	"context"
	"io"
	"time"
)

// Object describes a stored file.
type Object struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Bytes     int64     `json:"bytes"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
}

// Uploader is the blob storage surface the handlers depend on. The backend
// stores only the returned URL; file bytes never land in the database.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (*Object, error)
	List(ctx context.Context, folder string, max int32) ([]Object, error)
}
