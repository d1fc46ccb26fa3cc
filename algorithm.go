// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import (
	"fmt"
	"strconv"
	"strings"
)

// Algorithm identifies the hash function keyed by HMAC to build the PRF.
type Algorithm uint8

const (
	// MD5 selects HMAC-MD5.
	MD5 Algorithm = iota
	// SHA1 selects HMAC-SHA-1.
	SHA1
	// SHA256 selects HMAC-SHA-256.
	SHA256
	// SHA384 selects HMAC-SHA-384.
	SHA384
	// SHA512 selects HMAC-SHA-512.
	SHA512
)

// algorithmNames holds the canonical name of each algorithm.
var algorithmNames = map[Algorithm]string{
	MD5:    "MD5",
	SHA1:   "SHA-1",
	SHA256: "SHA-256",
	SHA384: "SHA-384",
	SHA512: "SHA-512",
}

// algorithmSizes holds the native output size in bytes of each algorithm.
var algorithmSizes = map[Algorithm]int{
	MD5:    16,
	SHA1:   20,
	SHA256: 32,
	SHA384: 48,
	SHA512: 64,
}

// String returns the canonical name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "Algorithm(" + strconv.Itoa(int(a)) + ")"
}

// HashSize returns the native output size in bytes, or 0 for an unknown
// algorithm.
func (a Algorithm) HashSize() int {
	return algorithmSizes[a]
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithmNames[a]
	return ok
}

// Algorithms returns the supported algorithms in ascending order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512}
}

// ParseAlgorithm maps a user supplied name to an Algorithm. Matching ignores
// case and hyphens, so "sha-256", "SHA256" and "Sha-2-56" are all SHA256.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(name, "-", ""))

	for _, a := range Algorithms() {
		if strings.ReplaceAll(algorithmNames[a], "-", "") == normalized {
			return a, nil
		}
	}

	return 0, &operationError{"ParseAlgorithm", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)}
}
