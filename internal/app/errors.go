package service

import (
	"errors"

	"github.com/okian/setterboard/internal/adapters/repository"
)

// Sentinel kinds for service errors.
var (
	ErrInvalidOffer  = errors.New("invalid offer")
	ErrInvalidWindow = errors.New("invalid date window")
	ErrNotFound      = repository.ErrNotFound
)
