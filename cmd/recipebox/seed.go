package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/internal/seed"
)

var (
	seedCount int
	seedValue uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print a batch of generated recipes as JSON",
	Long: `Prints the kind of recipes a fresh store is seeded with. A non-zero
--seed makes the output reproducible.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", seed.DefaultCount, "Number of recipes to generate")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "Random seed (0 picks one)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	opts := []seed.Option{seed.WithCount(seedCount)}
	if seedValue != 0 {
		opts = append(opts, seed.WithSeed(seedValue))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(seed.New(opts...).Seed())
}
