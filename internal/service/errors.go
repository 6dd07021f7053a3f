package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInitialization   = errors.New("question repository initialization failed")
	ErrGenerationFailed = errors.New("question generation failed")
	ErrInvalidRequest   = errors.New("invalid request")
)

// NotFoundError names the reference id that did not resolve
type NotFoundError struct {
	Kind string // "company" or "role"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func companyNotFound(id string) error {
	return &NotFoundError{Kind: "company", ID: id}
}

func roleNotFound(id string) error {
	return &NotFoundError{Kind: "role", ID: id}
}
