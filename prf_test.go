// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package pbkdf2

import (
	"bytes"
	"crypto/hmac"
	"errors"
	"sync"
	"testing"
)

func TestNewPRF(t *testing.T) {
	key := []byte("secret")

	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			prf, err := NewPRF(alg, key)
			if err != nil {
				t.Fatal(err)
			}
			defer prf.Release()

			if prf.HashSize() != alg.HashSize() {
				t.Errorf("expected hash size %d, got %d", alg.HashSize(), prf.HashSize())
			}

			mac := hmac.New(prfRegistry[alg], key)
			mac.Write([]byte("input"))
			expected := mac.Sum(nil)

			a := prf.Transform([]byte("input"))
			b := prf.Transform([]byte("input"))
			if !bytes.Equal(a, expected) || !bytes.Equal(b, expected) {
				t.Errorf("expected %x, got %x and %x", expected, a, b)
			}
			if len(a) != prf.HashSize() {
				t.Errorf("expected %d bytes, got %d", prf.HashSize(), len(a))
			}
		})
	}

	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		_, err := NewPRF(Algorithm(99), key)
		if !errors.Is(err, ErrUnsupportedAlgorithm) {
			t.Errorf("expected %v, got %v", ErrUnsupportedAlgorithm, err)
		}
	})

	t.Run("KeyCopied", func(t *testing.T) {
		k := []byte("secret")
		prf, err := NewPRF(SHA256, k)
		if err != nil {
			t.Fatal(err)
		}
		defer prf.Release()

		before := prf.Transform([]byte("input"))
		k[0] = 'S'
		after := prf.Transform([]byte("input"))
		if !bytes.Equal(before, after) {
			t.Errorf("PRF output changed after caller mutated the key")
		}
	})
}

func TestRelease(t *testing.T) {
	prf, err := NewPRF(SHA1, []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	impl := prf.(*hmacPRF)
	key := impl.key

	prf.Release()
	prf.Release()

	if !bytes.Equal(key, make([]byte, len(key))) {
		t.Errorf("expected key to be zeroed, got %x", key)
	}
	if prf.HashSize() != SHA1.HashSize() {
		t.Errorf("expected hash size to survive release, got %d", prf.HashSize())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected Transform after Release to panic")
		}
	}()
	prf.Transform([]byte("input"))
}

func TestNewPRFConcurrent(t *testing.T) {
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(alg Algorithm) {
			defer wg.Done()

			prf, err := NewPRF(alg, []byte("secret"))
			if err != nil {
				t.Error(err)
				return
			}
			defer prf.Release()

			if got := len(prf.Transform([]byte("input"))); got != alg.HashSize() {
				t.Errorf("%s: expected %d bytes, got %d", alg, alg.HashSize(), got)
			}
		}(Algorithms()[i%len(Algorithms())])
	}

	wg.Wait()
}
