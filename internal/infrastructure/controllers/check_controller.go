package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pinwatch/internal/domain/commands"
	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// CheckController handles the "check" subcommand and the bare root command.
type CheckController struct {
	command commands.Check
	lookup  entities.LookupFunc
}

// NewCheckController creates a new CheckController reading the process environment.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command, lookup: os.LookupEnv}
}

// NewCheckControllerWithLookup creates a CheckController with an injected environment.
func NewCheckControllerWithLookup(command commands.Check, lookup entities.LookupFunc) *CheckController {
	return &CheckController{command: command, lookup: lookup}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Check pinned components for newer upstream releases",
		Long: `Compare every tracked component of the versions file against its upstream
(GitHub releases or tags, kernel.org stable feed), apply the bumps allowed by
policy, and write the updated versions file plus a JSON summary.

Nothing is written when no component has an accepted update.`,
		Args: cobra.NoArgs,
	}
}

// Execute runs one reconciliation pass.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if verbose, _ := cmd.Flags().GetBool(FlagVerbose); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := entities.NewSettings(it.lookup)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	applyFlagOverrides(cmd, settings)
	dryRun, _ := cmd.Flags().GetBool(FlagDryRun)

	logger.Debugf("Using config file: %s", settings.ConfigPath)

	result, err := it.command.Execute(ctx, settings, commands.CheckOptions{
		DryRun: dryRun,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	logger.Debugf("Check complete: %d update(s), written=%t", len(result.Updates), result.Written)
	return nil
}
