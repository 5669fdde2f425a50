package custompages

import (
	"errors"
	"fmt"
)

var (
	ErrPageKeyRequired       = errors.New("custompages: page key is required")
	ErrPageKeyInvalid        = errors.New("custompages: page key contains invalid characters")
	ErrPageKeyReserved       = errors.New("custompages: page key collides with a reserved route")
	ErrPageKeyExists         = errors.New("custompages: page key already exists")
	ErrPageNotFound          = errors.New("custompages: page not found")
	ErrTitleRequired         = errors.New("custompages: title is required")
	ErrDisplayNameRequired   = errors.New("custompages: display name is required")
	ErrNavigationTypeInvalid = errors.New("custompages: navigation type is invalid")
	ErrParentKeyOnMain       = errors.New("custompages: top-level pages cannot declare a parent page key")
	ErrParentKeyRequired     = errors.New("custompages: dropdown children require a parent page key")
	ErrSyncConflict          = errors.New("custompages: navigation entry for page key exists from a different origin")
)

// NotFoundError is returned when a custom page resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPageNotFound
}

// SyncConflictError surfaces a navigation entry that blocks page registration.
type SyncConflictError struct {
	PageKey   string
	EntryType string
}

func (e *SyncConflictError) Error() string {
	if e == nil {
		return ErrSyncConflict.Error()
	}
	if e.EntryType != "" {
		return fmt.Sprintf("%s: key=%s type=%s", ErrSyncConflict.Error(), e.PageKey, e.EntryType)
	}
	return fmt.Sprintf("%s: key=%s", ErrSyncConflict.Error(), e.PageKey)
}

func (e *SyncConflictError) Unwrap() error {
	return ErrSyncConflict
}
