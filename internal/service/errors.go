package service

import "errors"

// Validation errors. The text is the API error body, so it matches what
// clients already display.
var (
	ErrEmptyTitle   = errors.New("Title is required")
	ErrEmptyTagName = errors.New("Name is required")
	ErrTooManyTags  = errors.New("Too many tags")
)
