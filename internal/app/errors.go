// Package app holds the view controllers and read services of the client.
package app

import "errors"

var (
	// ErrStale indicates that a response arrived after a newer request on the
	// same view and was discarded.
	ErrStale = errors.New("stale response discarded")
	// ErrSaveInProgress indicates that the dialog is already submitting.
	ErrSaveInProgress = errors.New("save already in progress")
	// ErrDialogClosed indicates that the dialog was already closed or dismissed.
	ErrDialogClosed = errors.New("dialog closed")
	// ErrInvalidUnit indicates an unknown weight unit.
	ErrInvalidUnit = errors.New("unit must be \"kg\" or \"lb\"")
)
