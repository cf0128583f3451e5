package domain

import "errors"

var (
	// ErrEmptyPost indicates a submit with no text and no images.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrMissingPostID indicates an operation on a post the server has not confirmed.
	ErrMissingPostID = errors.New("post has no id")

	// ErrInvalidPostID indicates a post id that is not a UUID.
	ErrInvalidPostID = errors.New("invalid post id")

	// ErrNotFound indicates a missing key in local storage.
	ErrNotFound = errors.New("not found")

	// ErrQuotaExceeded indicates local storage refused a write for size.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrNotImage indicates a file whose declared type is not image/*.
	ErrNotImage = errors.New("not an image")
)
