package db

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// StaleRecordError is returned when a record changed between reading it and
// committing a claim against it. Nothing is written in that case.
type StaleRecordError struct {
	Key     string
	Message string
}

func (e *StaleRecordError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Key)
}

func IsStaleRecordError(err error) bool {
	var target *StaleRecordError
	return errors.As(err, &target)
}

func toDuplicateKeyError(err error, key, message string) error {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, e := range writeErr.WriteErrors {
			if mongo.IsDuplicateKeyError(e) {
				return &DuplicateKeyError{
					Key:     key,
					Message: message,
				}
			}
		}
	}
	return err
}
