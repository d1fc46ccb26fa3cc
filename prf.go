// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// PRF is a keyed pseudo-random function bound to a single key.
//
// Transform must be deterministic for a given instance and must return
// exactly HashSize bytes. Release drops the key material; it may be called
// more than once. Transform must not be called after Release.
type PRF interface {
	HashSize() int
	Transform(in []byte) []byte
	Release()
}

// prfRegistry is the pseudo-random function registry. It is built once and
// only read afterwards, so it is safe for concurrent use.
var prfRegistry = map[Algorithm]func() hash.Hash{
	MD5:    md5.New,
	SHA1:   sha1.New,
	SHA256: sha256.New,
	SHA384: sha512.New384,
	SHA512: sha512.New,
}

// NewPRF returns an HMAC based PRF for the given algorithm keyed with key.
// The key is copied; the caller keeps ownership of its slice.
func NewPRF(alg Algorithm, key []byte) (PRF, error) {
	builder, ok := prfRegistry[alg]
	if !ok {
		return nil, &operationError{"NewPRF", ErrUnsupportedAlgorithm}
	}

	k := make([]byte, len(key))
	copy(k, key)

	mac := hmac.New(builder, k)

	return &hmacPRF{
		key:  k,
		mac:  mac,
		size: mac.Size(),
	}, nil
}

// hmacPRF is the HMAC construction used as a PRF.
type hmacPRF struct {
	key  []byte
	mac  hash.Hash
	size int
	sum  []byte
}

func (p *hmacPRF) HashSize() int {
	return p.size
}

func (p *hmacPRF) Transform(in []byte) []byte {
	if p.mac == nil {
		panic("pbkdf2: Transform called on a released PRF")
	}

	p.mac.Reset()
	p.mac.Write(in)
	return p.mac.Sum(nil)
}

// transformInto computes the keyed hash of in and writes it to dst, which must
// hold HashSize bytes. It avoids an allocation per iteration.
func (p *hmacPRF) transformInto(dst, in []byte) {
	if p.mac == nil {
		panic("pbkdf2: Transform called on a released PRF")
	}

	p.mac.Reset()
	p.mac.Write(in)
	p.sum = p.mac.Sum(p.sum[:0])
	copy(dst, p.sum)
}

func (p *hmacPRF) Release() {
	if p.mac == nil {
		return
	}

	p.mac.Reset()
	p.mac = nil
	clear(p.key)
	p.key = nil
	clear(p.sum)
	p.sum = nil
}
