// Package storage keeps generated files such as spreadsheet exports.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores file under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for missing files.
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored key.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Purge removes files under dir last modified before cutoff and
	// returns how many were removed.
	Purge(ctx context.Context, dir string, cutoff time.Time) (int, error)
}
