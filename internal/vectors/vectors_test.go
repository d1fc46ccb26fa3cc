// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package vectors

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zntr.io/pbkdf2"
)

func TestLoadRFC6070(t *testing.T) {
	f, err := NewParser(filepath.Join("testdata", "rfc6070.yaml")).Load()
	require.NoError(t, err)
	require.Len(t, f.Vectors, 5)

	results := f.Check()
	require.Len(t, results, 5)
	for _, r := range results {
		assert.NoError(t, r.Err, r.Vector.Name)
		assert.True(t, r.Match, "%s: got %x", r.Vector.Name, r.Actual)
	}
	assert.Zero(t, Failed(results))

	// Length defaults to the native hash size.
	assert.Len(t, results[1].Actual, pbkdf2.SHA1.HashSize())
	// NUL bytes survive YAML decoding.
	assert.Equal(t, "pass\x00word", *f.Vectors[4].Password)
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte(`
vectors:
  - password: p
    salt: s
    expected: "00"
`))
	require.NoError(t, err)

	v := f.Vectors[0]
	assert.Equal(t, "#1", v.Name)
	assert.Equal(t, "SHA-512", v.Algorithm)
	assert.Equal(t, DefaultIterations, v.Iterations)

	results := f.Check()
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Match)
	assert.Len(t, results[0].Actual, 64)
	assert.Equal(t, 1, Failed(results))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{
			name:   "NoVectors",
			doc:    "vectors: []",
			target: ErrNoVectors,
		},
		{
			name:   "MissingSalt",
			doc:    "vectors:\n  - password: p\n    expected: '00'",
			target: pbkdf2.ErrMissingParameter,
		},
		{
			name:   "MissingPassword",
			doc:    "vectors:\n  - salt: s\n    expected: '00'",
			target: pbkdf2.ErrMissingParameter,
		},
		{
			name:   "UnsupportedAlgorithm",
			doc:    "vectors:\n  - algorithm: SHA-3\n    password: p\n    salt: s\n    expected: '00'",
			target: pbkdf2.ErrUnsupportedAlgorithm,
		},
		{
			name:   "InvalidIterationCount",
			doc:    "vectors:\n  - password: p\n    salt: s\n    iterations: -1\n    expected: '00'",
			target: pbkdf2.ErrInvalidIterationCount,
		},
		{
			name:   "InvalidOutputLength",
			doc:    "vectors:\n  - password: p\n    salt: s\n    length: -1\n    expected: '00'",
			target: pbkdf2.ErrInvalidOutputLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("InvalidExpected", func(t *testing.T) {
		_, err := Parse([]byte("vectors:\n  - password: p\n    salt: s\n    expected: xyz"))
		assert.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := Parse([]byte("vectors: ["))
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewParser(filepath.Join("testdata", "missing.yaml")).Load()
		assert.Error(t, err)
	})
}
