package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by a KVStore when a key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fErr := range err.Fields {
		msgs = append(msgs, fErr.Field+": "+fErr.Error)
	}
	return strings.Join(msgs, "; ")
}

// NotFoundError reports an operation on a nonexistent entity.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (err NotFoundError) Error() string {
	return err.Resource + " not found"
}

// AuthError reports a missing or invalid credential.
type AuthError struct {
	message string
}

func NewAuthError(msg string) error {
	return &AuthError{message: msg}
}

func (err AuthError) Error() string {
	return err.message
}

// StoreError wraps a failure of the underlying key-value store.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func NewStoreError(op, key string, err error) error {
	return &StoreError{Op: op, Key: key, Err: err}
}

func (err StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", err.Op, err.Key, err.Err)
}

func (err StoreError) Unwrap() error { return err.Err }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
