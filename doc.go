// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Package pbkdf2 derives keys of arbitrary length from a password and a salt
// using the PBKDF2 construction (RFC 8018, section 5.2).
//
// The pseudo-random function driving the derivation is pluggable. A PRF is a
// keyed transform with a fixed output size; the package ships HMAC based
// PRFs over MD5, SHA-1, SHA-256, SHA-384 and SHA-512, selected by an
// Algorithm identifier.
//
// A DeriveBytes engine owns the PRF it is built with and releases it, zeroing
// the key copy, when closed. The output is a byte stream: successive calls to
// Bytes continue where the previous call stopped, and a single call for L
// bytes returns the same bytes as several smaller calls adding up to L.
//
// Key is the one-shot helper most callers want:
//
//	dk, err := pbkdf2.Key(pbkdf2.SHA256, password, salt, 600000, 32)
package pbkdf2
