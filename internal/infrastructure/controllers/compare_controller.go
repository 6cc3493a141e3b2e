package controllers

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/pinwatch/internal/domain/commands"
	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// CompareController handles the "compare" subcommand.
type CompareController struct {
	command commands.Compare
}

// NewCompareController creates a new CompareController.
func NewCompareController(command commands.Compare) *CompareController {
	return &CompareController{command: command}
}

// GetBind returns the Cobra command metadata for the compare controller.
func (it *CompareController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "compare <current> <candidate>",
		Short: "Show how two refs are ordered and whether the bump is allowed",
		Long: `Order a candidate ref against the current one using the same rules as
"check" (numeric core, prerelease ranking, lexicographic fallback) and report
whether the configured policy would accept the bump.`,
		Args: cobra.ExactArgs(2),
	}
}

// Execute prints the verdict for the two given refs.
func (it *CompareController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := entities.NewSettings(os.LookupEnv)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, settings)

	it.command.Execute(commands.CompareOptions{
		Current:   args[0],
		Candidate: args[1],
		Policy:    settings.Policy,
		Out:       cmd.OutOrStdout(),
	})
	return nil
}
