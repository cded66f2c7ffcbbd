package repository

import "errors"

var (
	ErrNotFound      = errors.New("session not found")
	ErrAlreadyExists = errors.New("session already exists")
	ErrInvalidOption = errors.New("invalid session options")
)
