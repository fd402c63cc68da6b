package domain

import "errors"

var (
	// ErrEmptyFile marks an upload with no header row at all.
	ErrEmptyFile = errors.New("file is empty")

	// ErrUnsupportedType marks an import type outside the registry.
	ErrUnsupportedType = errors.New("unsupported import type")

	// ErrUploadNotFound marks an import call referencing a filename that is
	// not (or no longer) present in the uploads directory.
	ErrUploadNotFound = errors.New("uploaded file not found")
)
