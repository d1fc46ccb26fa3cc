// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import (
	"encoding/binary"
	"fmt"
)

// maxBlocks is the highest block index encodable on 32 bits.
const maxBlocks = 1<<32 - 1

// DeriveBytes is a PBKDF2 derivation session. It owns its PRF.
//
// The derived key is produced as a stream: each call to Bytes returns the
// bytes following those returned by the previous call. A DeriveBytes must not
// be used concurrently.
type DeriveBytes struct {
	prf        PRF
	transform  func(dst, in []byte)
	salt       []byte
	iterations int

	// block is the index of the last computed block.
	block uint32
	// in holds SALT || INT(block).
	in []byte
	// u is the running U_j, t the folded F(block).
	u, t []byte
	// tail is the unread part of t.
	tail []byte
}

// New returns a derivation session over prf, salt and iterations.
//
// Ownership of prf is transferred to the session: it is released by Close,
// or immediately when New fails. The salt is copied.
func New(prf PRF, salt []byte, iterations int) (*DeriveBytes, error) {
	// Check arguments
	switch {
	case prf == nil:
		return nil, &operationError{"New", fmt.Errorf("%w: prf", ErrMissingParameter)}
	case iterations < 1:
		prf.Release()
		return nil, &operationError{"New", ErrInvalidIterationCount}
	case prf.HashSize() <= 0:
		prf.Release()
		return nil, &operationError{"New", fmt.Errorf("prf hash size must be positive, got %d", prf.HashSize())}
	}

	h := prf.HashSize()

	d := &DeriveBytes{
		prf:        prf,
		iterations: iterations,
		in:         make([]byte, len(salt)+4),
		u:          make([]byte, h),
		t:          make([]byte, h),
	}
	d.salt = d.in[:len(salt)]
	copy(d.salt, salt)

	// Use the allocation free path when the PRF provides one.
	if fast, ok := prf.(interface{ transformInto(dst, in []byte) }); ok {
		d.transform = fast.transformInto
	} else {
		d.transform = func(dst, in []byte) {
			copy(dst, prf.Transform(in))
		}
	}

	return d, nil
}

// HashSize returns the block size of the session, which is the PRF output size.
func (d *DeriveBytes) HashSize() int {
	return len(d.t)
}

// Bytes returns the next n bytes of the derived key.
//
// Requesting 0 bytes returns an empty slice and does not call the PRF. The
// request is rejected with ErrOutputTooLarge before any computation when it
// would need a block index above 2^32-1.
func (d *DeriveBytes) Bytes(n int) ([]byte, error) {
	// Check arguments
	switch {
	case d.prf == nil:
		return nil, &operationError{"Bytes", ErrClosed}
	case n < 0:
		return nil, &operationError{"Bytes", ErrInvalidOutputLength}
	case n == 0:
		return []byte{}, nil
	}

	if need := n - len(d.tail); need > 0 {
		h := uint64(len(d.t))
		blocks := (uint64(need) + h - 1) / h
		if uint64(d.block)+blocks > maxBlocks {
			return nil, &operationError{"Bytes", ErrOutputTooLarge}
		}
	}

	out := make([]byte, n)
	k := copy(out, d.tail)
	d.tail = d.tail[k:]

	for k < n {
		d.block++
		d.nextBlock()

		c := copy(out[k:], d.t)
		k += c
		d.tail = d.t[c:]
	}

	return out, nil
}

// nextBlock computes F(block) into t.
//
// F(i) = U_1 ^ U_2 ^ ... ^ U_c
// U_1 = PRF(SALT || INT(i)), U_j = PRF(U_{j-1})
func (d *DeriveBytes) nextBlock() {
	binary.BigEndian.PutUint32(d.in[len(d.salt):], d.block)

	d.transform(d.u, d.in)
	copy(d.t, d.u)

	for j := 2; j <= d.iterations; j++ {
		d.transform(d.u, d.u)
		for x := range d.t {
			d.t[x] ^= d.u[x]
		}
	}
}

// Close releases the PRF and wipes the session buffers. It is safe to call
// Close more than once.
func (d *DeriveBytes) Close() error {
	if d.prf == nil {
		return nil
	}

	d.prf.Release()
	d.prf = nil
	d.transform = nil

	clear(d.u)
	clear(d.t)
	clear(d.in)
	d.tail = nil

	return nil
}
