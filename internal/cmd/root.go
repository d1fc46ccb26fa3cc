// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zntr.io/pbkdf2"
)

const (
	version = "0.1.0"

	// envPrefix scopes environment variables, e.g. PBKDF2_ITERATIONS.
	envPrefix = "PBKDF2"

	defaultIterations = 1000
	defaultAlgorithm  = "SHA-512"
	defaultLogLevel   = "warn"
)

// NewRootCommand builds the pbkdf2 command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pbkdf2",
		Short: "Derive keys with PBKDF2",
		Long: `pbkdf2 derives a key from a password and a salt with PBKDF2 over
HMAC-MD5, HMAC-SHA-1, HMAC-SHA-256, HMAC-SHA-384 or HMAC-SHA-512.

Without --expected it prints "ALGORITHM: HEX". With --expected it prints 1
when the derived key matches the given hex string (case-insensitive) and 0
otherwise.

Every flag can also be set with a PBKDF2_ environment variable
(PBKDF2_OUTPUT_BYTES for --output-bytes) or in the file given by --config.`,
		Example: `  pbkdf2 -p password -s salt -a SHA-1 -i 4096 -o 20
  pbkdf2 -p password -s salt -a sha1 -i 1 -e 0c60c80f961f0e71f3a9b524af6012062fe037a6
  pbkdf2 vectors testdata/rfc6070.yaml`,
		Version:       version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "configuration file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.Flags().StringP("password", "p", "", "the password to hash")
	rootCmd.Flags().StringP("salt", "s", "", "salt to use for hashing")
	rootCmd.Flags().Int64P("iterations", "i", defaultIterations, "number of iterations")
	rootCmd.Flags().IntP("output-bytes", "o", 0, "number of bytes to output (default: the algorithm hash size)")
	rootCmd.Flags().StringP("algorithm", "a", defaultAlgorithm, "algorithm (MD5, SHA-1, SHA-256, SHA-384, SHA-512)")
	rootCmd.Flags().StringP("expected", "e", "", "expected output as a hex string, e.g. 'ab0937af...'")

	// Errors only come from flags that do not exist.
	_ = v.BindPFlags(rootCmd.PersistentFlags())
	_ = v.BindPFlags(rootCmd.Flags())

	rootCmd.AddCommand(newVectorsCommand())

	return rootCmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initConfig wires the environment, the optional configuration file and the
// logger.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := setupLogging(v.GetString("log-level"), cmd.ErrOrStderr()); err != nil {
		return err
	}

	logrus.WithField("config", v.ConfigFileUsed()).Debug("Configuration initialized")

	return nil
}

// setupLogging configures the logrus standard logger.
func setupLogging(level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	return nil
}

func runDerive(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := LoadConfig(v)
	if err != nil {
		logrus.WithError(err).Error("Invalid parameters")
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		logrus.WithError(err).Error("Invalid parameters")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"algorithm":    params.Algorithm.String(),
		"iterations":   params.Iterations,
		"output_bytes": params.OutputLength(),
		"salt_bytes":   len(params.Salt),
	}).Debug("Deriving key")

	dk, err := params.Derive()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Expected != nil {
		fmt.Fprintln(out, formatMatch(pbkdf2.Match(dk, *cfg.Expected)))
		return nil
	}

	fmt.Fprintf(out, "%s: %s\n", cfg.Algorithm, formatKey(dk))
	return nil
}

// formatKey renders a derived key as upper case hex.
func formatKey(dk []byte) string {
	return strings.ToUpper(hex.EncodeToString(dk))
}

func formatMatch(ok bool) string {
	if ok {
		return "1"
	}
	return "0"
}
