package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pinwatch/internal"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/controllers"
)

func buildRootCommand(checkController *controllers.CheckController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "pinwatch",
		Short: "Keep pinned upstream component versions up to date",
		Long: `Checks the components pinned in a versions file (QEMU, BusyBox, U-Boot,
Arm Trusted Firmware, Linux) against their latest upstream releases and bumps
the pins allowed by policy.

Usage modes:
  pinwatch                        Check and update versions.yml (same as "check")
  pinwatch check -c versions.yml  Check a specific versions file
  pinwatch compare 1.0.0 2.0.0    Explain how two refs are ordered and gated

Environment:
  VERSIONS_YML, ALLOW_MAJOR_BUMPS, ALLOW_RC, GITHUB_TOKEN`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return checkController.Execute(command, args)
		},
	}

	controllers.AddPersistentFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	app := injectApplication()
	cobraRoot := buildRootCommand(app.checkController)
	addSubcommands(cobraRoot, app.appInternal)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'pinwatch': %s", err)
	}
}
