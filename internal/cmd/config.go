// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	"zntr.io/pbkdf2"
)

// Config holds the settings of a derivation run. Pointer fields are nil when
// the value was not supplied by any source.
type Config struct {
	Password    *string
	Salt        *string
	Iterations  int64
	OutputBytes int
	Algorithm   string
	Expected    *string
}

// LoadConfig reads the derivation settings from v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Iterations:  v.GetInt64("iterations"),
		OutputBytes: v.GetInt("output-bytes"),
		Algorithm:   v.GetString("algorithm"),
	}

	if v.IsSet("password") {
		s := v.GetString("password")
		cfg.Password = &s
	}
	if v.IsSet("salt") {
		s := v.GetString("salt")
		cfg.Salt = &s
	}
	if v.IsSet("expected") {
		s := v.GetString("expected")
		cfg.Expected = &s
	}

	// Check arguments
	switch {
	case cfg.Password == nil:
		return nil, fmt.Errorf("%w: password", pbkdf2.ErrMissingParameter)
	case cfg.Salt == nil:
		return nil, fmt.Errorf("%w: salt", pbkdf2.ErrMissingParameter)
	}

	return cfg, nil
}

// Params converts the settings into validated derivation parameters.
func (c *Config) Params() (*pbkdf2.Params, error) {
	alg, err := pbkdf2.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}

	if c.Iterations > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", pbkdf2.ErrInvalidIterationCount, c.Iterations)
	}

	p := &pbkdf2.Params{
		Algorithm:  alg,
		Iterations: int(c.Iterations),
		KeyLength:  c.OutputBytes,
	}
	if c.Password != nil {
		p.Password = []byte(*c.Password)
	}
	if c.Salt != nil {
		p.Salt = []byte(*c.Salt)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
