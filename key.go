// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Key derives keyLen bytes from password and salt with PBKDF2 over the HMAC
// selected by alg.
//
// All arguments are validated before the PRF is built, and the PRF is
// released before Key returns. A keyLen of 0 yields an empty key.
func Key(alg Algorithm, password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if err := checkDerivation(alg, iterations, keyLen); err != nil {
		return nil, &operationError{"Key", err}
	}

	return derive(alg, password, salt, iterations, keyLen)
}

// Params describes a derivation request as received from a caller layer.
type Params struct {
	// Algorithm selects the HMAC hash.
	Algorithm Algorithm
	// Password keys the PRF. It must not be nil.
	Password []byte
	// Salt is the public randomizer. It must not be nil, but may be empty.
	Salt []byte
	// Iterations is the iteration count, at least 1.
	Iterations int
	// KeyLength is the derived key length in bytes. Zero selects the native
	// hash size of Algorithm.
	KeyLength int
}

// OutputLength returns the number of bytes Derive produces.
func (p *Params) OutputLength() int {
	if p.KeyLength == 0 {
		return p.Algorithm.HashSize()
	}
	return p.KeyLength
}

// Validate checks the parameters without deriving anything.
func (p *Params) Validate() error {
	// Check arguments
	switch {
	case p.Password == nil:
		return &operationError{"Validate", fmt.Errorf("%w: password", ErrMissingParameter)}
	case p.Salt == nil:
		return &operationError{"Validate", fmt.Errorf("%w: salt", ErrMissingParameter)}
	}

	if err := checkDerivation(p.Algorithm, p.Iterations, p.KeyLength); err != nil {
		return &operationError{"Validate", err}
	}

	return nil
}

// Derive validates the parameters and returns the derived key.
func (p *Params) Derive() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return derive(p.Algorithm, p.Password, p.Salt, p.Iterations, p.OutputLength())
}

// Match reports whether the hex encoding of derived equals expected, ignoring
// case. The comparison of the decoded bytes runs in constant time. An
// expected value that is not valid hex never matches.
func Match(derived []byte, expected string) bool {
	want, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, want) == 1
}

// checkDerivation validates what can be checked before building a PRF.
func checkDerivation(alg Algorithm, iterations, keyLen int) error {
	switch {
	case !alg.Valid():
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	case iterations < 1:
		return ErrInvalidIterationCount
	case keyLen < 0:
		return ErrInvalidOutputLength
	}

	h := uint64(alg.HashSize())
	if (uint64(keyLen)+h-1)/h > maxBlocks {
		return ErrOutputTooLarge
	}

	return nil
}

func derive(alg Algorithm, password, salt []byte, iterations, keyLen int) ([]byte, error) {
	prf, err := NewPRF(alg, password)
	if err != nil {
		return nil, err
	}

	d, err := New(prf, salt, iterations)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	return d.Bytes(keyLen)
}
