// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zntr.io/pbkdf2/internal/vectors"
)

func newVectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vectors FILE",
		Short: "Check derivations against a YAML file of test vectors",
		Args:  cobra.ExactArgs(1),
		// A failing vector is not a usage error.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := vectors.NewParser(args[0]).Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			results := f.Check()
			for _, r := range results {
				log := logrus.WithFields(logrus.Fields{
					"vector":     r.Vector.Name,
					"algorithm":  r.Vector.Algorithm,
					"iterations": r.Vector.Iterations,
				})

				switch {
				case r.Err != nil:
					log.WithError(r.Err).Error("Derivation failed")
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Vector.Name, r.Err)
				case !r.Match:
					log.Warn("Vector mismatch")
					fmt.Fprintf(out, "FAIL %s: got %s\n", r.Vector.Name, formatKey(r.Actual))
				default:
					log.Debug("Vector matched")
					fmt.Fprintf(out, "ok   %s\n", r.Vector.Name)
				}
			}

			if failed := vectors.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d vectors failed", failed, len(results))
			}

			return nil
		},
	}
}
