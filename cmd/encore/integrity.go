package main

import (
	"fmt"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/fileutil"
)

// runIntegrity prints "<integrity>  <file>" for each file, in argument order.
// Algorithm priority: flag > config file > sha384.
func runIntegrity(positionalArgs []string, flags *integrityFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: at least one file", ErrNoInput)
	}

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}

	algorithm := flags.algorithm
	if algorithm == "" {
		algorithm = cfg.Integrity.Algorithm
	}

	for _, path := range positionalArgs {
		data, err := fileutil.ReadFileLimited(fileutil.OSOpener, path, maxAssetSize)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		value, err := encore.ComputeIntegrity(algorithm, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s  %s\n", value, path)
	}
	return nil
}
