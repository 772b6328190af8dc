package repository

import "errors"

// Sentinel kinds for offer store errors.
var (
	ErrNotFound = errors.New("offer not found")
	ErrStore    = errors.New("offer store failed")
)
