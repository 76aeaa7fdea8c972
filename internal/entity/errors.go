package entity

import "errors"

var (
	ErrIncorrectRequestBody = errors.New("incorrect request body")
	ErrValidation           = errors.New("validation failed")
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
)
