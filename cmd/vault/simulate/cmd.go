// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import (
	"github.com/luxfi/log"
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Runs simulated users against a vault on an in-memory devnet",
		RunE:  simulateFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func simulateFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	logger := log.NewLogger("vault")
	result, err := Run(c.Context(), config, logger)
	if err != nil {
		return err
	}

	logger.Info("simulation finished",
		log.Uint64("eras", config.Eras),
		log.Uint64("stakes", result.Stakes),
		log.Uint64("unlocks", result.Unlocks),
		log.Uint64("redemptions", result.Redemptions),
		log.String("incentives", result.Incentives.Dec()),
		log.String("feesWithdrawn", result.FeesWithdrawn.Dec()),
		log.String("totalPooled", result.TotalPooled.Dec()),
		log.String("totalShares", result.TotalShares.Dec()),
		log.String("rate", result.Rate.Dec()),
	)
	return nil
}
