// Package photostore stores recipe photos by opaque key.
package photostore

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("photo not found")
	ErrInvalidKey = errors.New("invalid photo key")
)

type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Ext returns the file extension for an image MIME type, defaulting to .jpg.
func Ext(mimeType string) string {
	if ext, ok := extByMIME[mimeType]; ok {
		return ext
	}
	return ".jpg"
}

// MIMEFromExt is the inverse of Ext.
func MIMEFromExt(ext string) string {
	for m, e := range extByMIME {
		if e == ext {
			return m
		}
	}
	return "image/jpeg"
}
