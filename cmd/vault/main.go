// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/vault/cmd/vault/serve"
	"github.com/luxfi/vault/cmd/vault/simulate"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:          "vault",
		Short:        "Runs a liquid staking vault",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		serve.Command(),
		simulate.Command(),
	)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
