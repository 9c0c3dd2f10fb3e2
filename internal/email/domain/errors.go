package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an email does not exist or belongs to
// another user (single-id operations do not reveal which).
var ErrNotFound = errors.New("email not found")

// ValidationError rejects a request whose payload is malformed. Field is the
// path of the first offending field (e.g. "records[3].received_at").
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthorizationError rejects a multi-id operation because some of the
// referenced emails do not belong to the requesting user. No partial
// mutation happens.
type AuthorizationError struct {
	Requested int
	Found     int
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%d of %d emails do not belong to the requesting user", e.Unauthorized(), e.Requested)
}

// Unauthorized is the number of ids that failed the ownership check
func (e *AuthorizationError) Unauthorized() int {
	return e.Requested - e.Found
}
