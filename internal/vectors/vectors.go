// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Package vectors loads PBKDF2 test vectors from YAML and checks them.
package vectors

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"zntr.io/pbkdf2"
)

// DefaultIterations is applied to vectors without an iteration count.
const DefaultIterations = 1000

// ErrNoVectors is returned when a file holds no vector.
var ErrNoVectors = errors.New("no vectors defined")

// Vector is one expected derivation.
type Vector struct {
	Name       string  `yaml:"name"`
	Algorithm  string  `yaml:"algorithm"`
	Password   *string `yaml:"password"`
	Salt       *string `yaml:"salt"`
	Iterations int     `yaml:"iterations"`
	Length     int     `yaml:"length"`
	Expected   string  `yaml:"expected"`
}

// File is the root of a vector document.
type File struct {
	Vectors []Vector `yaml:"vectors"`
}

// Result is the outcome of checking one vector.
type Result struct {
	Vector Vector
	Actual []byte
	Match  bool
	Err    error
}

// Parser handles vector file parsing and validation.
type Parser struct {
	path string
}

// NewParser creates a new vector file parser.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Load reads and parses the vector file.
func (p *Parser) Load() (*File, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file %s: %w", p.path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML vector document, applies defaults and validates it.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML vectors: %w", err)
	}

	if len(f.Vectors) == 0 {
		return nil, ErrNoVectors
	}

	for i := range f.Vectors {
		v := &f.Vectors[i]
		setDefaults(v, i)
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("vector %q: %w", v.Name, err)
		}
	}

	return &f, nil
}

func setDefaults(v *Vector, index int) {
	if v.Name == "" {
		v.Name = "#" + strconv.Itoa(index+1)
	}
	if v.Algorithm == "" {
		v.Algorithm = pbkdf2.SHA512.String()
	}
	if v.Iterations == 0 {
		v.Iterations = DefaultIterations
	}
}

func validate(v *Vector) error {
	if _, err := v.Params(); err != nil {
		return err
	}
	if _, err := hex.DecodeString(v.Expected); err != nil || v.Expected == "" {
		return fmt.Errorf("expected must be a non-empty hex string")
	}
	return nil
}

// Params converts the vector to derivation parameters.
func (v *Vector) Params() (*pbkdf2.Params, error) {
	alg, err := pbkdf2.ParseAlgorithm(v.Algorithm)
	if err != nil {
		return nil, err
	}

	p := &pbkdf2.Params{
		Algorithm:  alg,
		Iterations: v.Iterations,
		KeyLength:  v.Length,
	}
	if v.Password != nil {
		p.Password = []byte(*v.Password)
	}
	if v.Salt != nil {
		p.Salt = []byte(*v.Salt)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Check derives the vector and compares it with the expected value.
func (v *Vector) Check() Result {
	r := Result{Vector: *v}

	p, err := v.Params()
	if err != nil {
		r.Err = err
		return r
	}

	r.Actual, r.Err = p.Derive()
	if r.Err == nil {
		r.Match = pbkdf2.Match(r.Actual, v.Expected)
	}

	return r
}

// Check checks every vector in order.
func (f *File) Check() []Result {
	results := make([]Result, 0, len(f.Vectors))
	for i := range f.Vectors {
		results = append(results, f.Vectors[i].Check())
	}
	return results
}

// Failed counts the results that did not match.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Match {
			n++
		}
	}
	return n
}
