package service

import (
	"errors"

	"bookhub/internal/http-api/repository"
)

var (
	// ErrBookNotFound is the repository sentinel, re-exported so handlers
	// only depend on the service package.
	ErrBookNotFound = repository.ErrBookNotFound

	ErrNoTextContent = errors.New("no text content available for this book")
)
