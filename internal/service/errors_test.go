package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSanitizeErrorKnownSentinels(t *testing.T) {
	require.Equal(t, "the requested record was not found", SanitizeError(gorm.ErrRecordNotFound))
	require.Equal(t, "the requested record was not found", SanitizeError(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	require.Equal(t, "the data store took too long to respond", SanitizeError(context.DeadlineExceeded))
}

func TestSanitizeErrorDriverStrings(t *testing.T) {
	require.Equal(t,
		"a record with the same unique value already exists",
		SanitizeError(errors.New(`ERROR: duplicate key value violates unique constraint "members_email_key"`)))
	require.Equal(t,
		"the data store is unreachable",
		SanitizeError(errors.New("dial tcp 127.0.0.1:5432: connection refused")))
}

func TestSanitizeErrorUnknown(t *testing.T) {
	require.Equal(t, "an unexpected error occurred", SanitizeError(errors.New("some internal detail")))
	require.Empty(t, SanitizeError(nil))
}
