package services

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrNotModified = errors.New("no fields modified")
	ErrStore       = errors.New("store failure")
	ErrGateway     = errors.New("payment gateway failure")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// parseID treats a malformed id like an unknown one: no document can match it.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func requireEmail(doc map[string]any, field, msg string) error {
	v, ok := doc[field].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return invalid(msg)
	}
	return nil
}
