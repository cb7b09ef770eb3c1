// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrIO              = errors.New("asset unreadable")
	ErrDecode          = errors.New("unsupported or corrupt audio")
	ErrNotFound        = errors.New("asset not preloaded")
	ErrCapacity        = errors.New("no voice available")
	ErrDuplicate       = errors.New("asset already preloaded and in use")
	ErrDevice          = errors.New("output device failure")
	ErrInUse           = errors.New("asset has bound voices")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrClosed          = errors.New("engine closed")
)

// Error describes a failed control operation on one asset.
type Error struct {
	Op   string
	ID   AssetID
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.ID != "" {
		msg += " " + string(e.ID)
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the error kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func opError(op string, id AssetID, kind, err error) *Error {
	return &Error{Op: op, ID: id, Kind: kind, Err: err}
}

func opErrorf(op string, id AssetID, kind error, format string, args ...any) *Error {
	return &Error{Op: op, ID: id, Kind: kind, Err: fmt.Errorf(format, args...)}
}
