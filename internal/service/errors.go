package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// sanitizedMessages maps known store errors to user-facing strings. Raw
// driver errors never reach a response body.
var sanitizedMessages = map[error]string{
	gorm.ErrRecordNotFound:      "the requested record was not found",
	gorm.ErrDuplicatedKey:       "a record with the same unique value already exists",
	gorm.ErrForeignKeyViolated:  "the record is referenced by other data",
	gorm.ErrInvalidTransaction:  "the operation could not be completed",
	context.DeadlineExceeded:    "the data store took too long to respond",
	context.Canceled:            "the request was cancelled",
}

// substringMessages catches driver-level errors that arrive as plain strings.
var substringMessages = []struct {
	fragment string
	message  string
}{
	{"duplicate key", "a record with the same unique value already exists"},
	{"unique constraint", "a record with the same unique value already exists"},
	{"connection refused", "the data store is unreachable"},
	{"timeout", "the data store took too long to respond"},
}

// SanitizeError translates a storage error into a message safe to show an
// admin. Unknown errors collapse to a generic message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, message := range sanitizedMessages {
		if errors.Is(err, sentinel) {
			return message
		}
	}
	lower := strings.ToLower(err.Error())
	for _, entry := range substringMessages {
		if strings.Contains(lower, entry.fragment) {
			return entry.message
		}
	}
	return "an unexpected error occurred"
}
