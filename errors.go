// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned when the algorithm is not one of the
	// supported identifiers.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrMissingParameter is returned when the password or the salt is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidIterationCount is returned when the iteration count is lower than 1.
	ErrInvalidIterationCount = errors.New("invalid iteration count")
	// ErrInvalidOutputLength is returned when the requested output length is negative.
	ErrInvalidOutputLength = errors.New("invalid output length")
	// ErrOutputTooLarge is returned when the output would need more blocks than
	// the 32-bit block index can address.
	ErrOutputTooLarge = errors.New("output too large")
	// ErrClosed is returned when reading from a closed engine.
	ErrClosed = errors.New("derivation closed")
)

// operationError is an error that includes the operation name.
type operationError struct {
	operation string
	err       error
}

// Error returns the error message.
func (e *operationError) Error() string {
	if e.err == nil {
		return "op:" + e.operation + " - no error provided"
	}
	return "op:" + e.operation + " - " + e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *operationError) Unwrap() error {
	return e.err
}

// Is returns true if the target error is the same as the wrapped error.
func (e *operationError) Is(target error) bool {
	return e.err == target
}
