package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pageza/recipebox/config"
	"github.com/pageza/recipebox/internal/slot"
	"github.com/pageza/recipebox/internal/store"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Inspect the durable session slot",
}

var slotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted favorites and session user",
	Args:  cobra.NoArgs,
	RunE:  runSlotShow,
}

var slotResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the slot so the next start uses default session state",
	Args:  cobra.NoArgs,
	RunE:  runSlotReset,
}

func runSlotShow(cmd *cobra.Command, args []string) (err error) {
	slt, err := openSlot(cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, slt.Close()) }()

	data, err := slt.Load(cmd.Context())
	if errors.Is(err, slot.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "slot %q is empty\n", slt.Name())
		return nil
	}
	if err != nil {
		return err
	}

	state, err := store.DecodeState(data)
	if err != nil {
		return fmt.Errorf("slot %q holds malformed data: %w", slt.Name(), err)
	}
	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runSlotReset(cmd *cobra.Command, args []string) (err error) {
	slt, err := openSlot(cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, slt.Close()) }()

	if err := slt.Delete(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset slot %q: %w", slt.Name(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "slot %q reset\n", slt.Name())
	return nil
}

func openSlot(cmd *cobra.Command) (slot.Slot, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return slot.Open(cmd.Context(), cfg, logger)
}
