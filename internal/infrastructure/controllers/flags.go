package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

// Persistent flag names shared by every subcommand.
const (
	FlagConfig          = "config"
	FlagSummary         = "summary"
	FlagChangelog       = "changelog"
	FlagToken           = "token"
	FlagAllowMajorBumps = "allow-major-bumps"
	FlagAllowRC         = "allow-rc"
	FlagDryRun          = "dry-run"
	FlagVerbose         = "verbose"
)

// AddPersistentFlags registers the global flags on the root command.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagConfig, "c", "",
		"Path to the versions file (default: $VERSIONS_YML or versions.yml)")
	cmd.PersistentFlags().String(FlagSummary, "",
		"Path of the JSON update summary (default: out/version-updates.json)")
	cmd.PersistentFlags().String(FlagChangelog, "",
		"Keep-a-Changelog file to record accepted bumps in")
	cmd.PersistentFlags().String(FlagToken, "",
		"GitHub token, ${ENV_VAR} reference or token file (default: $GITHUB_TOKEN)")
	cmd.PersistentFlags().Bool(FlagAllowMajorBumps, false,
		"Accept bumps that change the major version (default: $ALLOW_MAJOR_BUMPS)")
	cmd.PersistentFlags().Bool(FlagAllowRC, false,
		"Accept prerelease versions (default: $ALLOW_RC)")
	cmd.PersistentFlags().Bool(FlagDryRun, false,
		"Report bumps without writing any file")
	cmd.PersistentFlags().BoolP(FlagVerbose, "v", false,
		"Enable verbose output")
}

// applyFlagOverrides lets explicitly set flags win over the environment.
func applyFlagOverrides(cmd *cobra.Command, settings *entities.Settings) {
	flags := cmd.Flags()
	if flags.Changed(FlagConfig) {
		settings.ConfigPath, _ = flags.GetString(FlagConfig)
	}
	if flags.Changed(FlagSummary) {
		settings.SummaryPath, _ = flags.GetString(FlagSummary)
	}
	if flags.Changed(FlagChangelog) {
		settings.ChangelogPath, _ = flags.GetString(FlagChangelog)
	}
	if flags.Changed(FlagToken) {
		token, _ := flags.GetString(FlagToken)
		settings.GitHubToken = entities.ResolveToken(token)
	}
	if flags.Changed(FlagAllowMajorBumps) {
		settings.Policy.AllowMajorBumps, _ = flags.GetBool(FlagAllowMajorBumps)
	}
	if flags.Changed(FlagAllowRC) {
		settings.Policy.AllowPrereleases, _ = flags.GetBool(FlagAllowRC)
	}
}
