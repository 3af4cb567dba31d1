package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDataset  = errors.New("invalid dataset")
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInternal        = errors.New("internal error")
)
