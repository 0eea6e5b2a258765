// Package errors provides sentinel errors for document set operations.
package errors

import "errors"

var (
	// ErrDocumentNotFound indicates no readable document exists for a slug.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnknownSet indicates a document set id that is not configured.
	ErrUnknownSet = errors.New("unknown document set")

	// ErrInvalidSlug indicates slug parts that cannot name a document inside the set.
	ErrInvalidSlug = errors.New("invalid document slug")

	// ErrWalkFailed indicates traversal of a document set directory failed.
	ErrWalkFailed = errors.New("document set walk failed")
)
