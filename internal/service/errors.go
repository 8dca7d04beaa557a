package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/folio/backend/internal/repository"
)

var (
	// ErrUnauthorized is returned by operator-only operations when ctx
	// carries no verified operator session.
	ErrUnauthorized = errors.New("operator session required")
	// ErrQuotaExceeded is returned when a source used up its daily submissions.
	ErrQuotaExceeded = errors.New("daily submission limit reached")
	// ErrIntakeDisabled is returned while the advice museum is switched off.
	ErrIntakeDisabled = errors.New("advice submissions are disabled")
	// ErrInvalidCredentials is returned by Login for any credential mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists rejected fields with a short reason code each.
// It is raised before any store call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// SubmissionError wraps a store failure during public intake.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "submission failed: " + e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }

// MutationError wraps a store failure during an operator transition.
// The record keeps its previous state.
type MutationError struct {
	Op   string
	Kind string
	ID   string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// NotFoundError reports a record that no longer exists; callers should
// refresh their listing.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return e.Kind + " " + e.ID + " not found" }

// Is lets errors.Is(err, repository.ErrNotFound) keep working above the service layer.
func (e *NotFoundError) Is(target error) bool { return target == repository.ErrNotFound }

// mutationErr classifies a repository error raised by an operator mutation.
func mutationErr(op, kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return &MutationError{Op: op, Kind: kind, ID: id, Err: err}
}

// lookupErr classifies a repository error raised by a single-record read.
func lookupErr(kind, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return fmt.Errorf("get %s %s: %w", kind, id, err)
}
