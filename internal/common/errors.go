// Package common defines shared sentinel errors and small helpers used
// across the inventory client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation / item-specific errors.
	ErrValidation = errors.New("validation error")
	ErrOutOfStock = errors.New("item is out of stock")

	// Preference-driven refusals.
	ErrSharingDisabled = errors.New("sharing is disabled in settings")
)
