// Package iohelper provides helper functions for I/O operations,
// particularly for safely reading scanner payloads with size limits.
package iohelper

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Standard input size limits for different payloads
const (
	// SmallMaxInputSize is for AI insight documents (4MB)
	SmallMaxInputSize int64 = 4 * 1024 * 1024

	// DefaultMaxInputSize is for scanner reports (64MB)
	DefaultMaxInputSize int64 = 64 * 1024 * 1024
)

// ErrTooLarge is returned when a payload exceeds its size limit.
var ErrTooLarge = errors.New("input exceeds size limit")

// ReadLimited reads from an io.Reader with a size limit.
// If r is nil, returns empty slice and no error. Unlike a plain
// io.LimitReader, oversized input is an error rather than silently cut,
// since a truncated report would parse as malformed.
//
// Usage:
//
//	raw, err := iohelper.ReadLimited(f, iohelper.DefaultMaxInputSize)
func ReadLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSize)
	}
	return data, nil
}

// ReadFile reads a payload file with a size limit. An empty path means the
// payload was not supplied and yields an empty slice.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	if path == "" {
		return []byte{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadLimited(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
