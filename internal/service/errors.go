package service

import (
	"errors"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = repository.ErrNotFound

	// ErrConflict is returned when a unique key such as a dish code is taken
	ErrConflict = repository.ErrConflict

	// ErrInvalidInput is returned when a request fails validation
	ErrInvalidInput = errors.New("invalid input")

	ErrPasswordsDoNotMatch   = errors.New("passwords do not match")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)
