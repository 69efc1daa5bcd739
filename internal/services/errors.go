package services

import (
	"errors"
	"fmt"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
)

// Error kinds returned by the service layer. Handlers match these with
// errors.Is and translate them to HTTP statuses; business outcomes such as
// "not following" or "not bookmarked" are never signaled through them.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity id that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an actor lacking authorization for a mutation.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfRelation marks a relationship operation where actor == target.
	ErrSelfRelation = errors.New("self relation not allowed")
	// ErrConflict marks duplicate-creation races such as an already registered email.
	ErrConflict = errors.New("conflict")
	// ErrDependency marks a store or collaborator failure. The triggering
	// operation is always safe to re-issue: every multi-record sequence is
	// built from idempotent per-record set mutations.
	ErrDependency = errors.New("dependency failure")
)

// validationf builds a validation error with a caller-facing message.
func validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// notFound wraps ErrNotFound naming the entity kind that failed to resolve.
func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// dependency wraps a store error as ErrDependency, keeping the cause text.
func dependency(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrDependency)
}

// translateLookup maps a repository lookup error for the named entity:
// missing records become ErrNotFound, everything else a dependency failure.
func translateLookup(entity string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(entity)
	}
	return dependency("get "+entity, err)
}
