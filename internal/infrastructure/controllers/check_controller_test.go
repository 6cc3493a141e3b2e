//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pinwatch/internal/domain/commands"
	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/controllers"
	"github.com/rios0rios0/pinwatch/test/domain/commanddoubles"
)

func lookupFrom(env map[string]string) entities.LookupFunc {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func newCobraCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "check"}
	controllers.AddPersistentFlags(cmd)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, out
}

func TestCheckControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should build settings from the environment", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.CheckCommandSpy{}
		controller := controllers.NewCheckControllerWithLookup(spy, lookupFrom(map[string]string{
			entities.EnvConfigPath:      "board/versions.yml",
			entities.EnvAllowMajorBumps: "TRUE",
			entities.EnvGitHubToken:     "ghp_env",
		}))
		cmd, out := newCobraCommand(t)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.Len(t, spy.Settings, 1)
		settings := spy.Settings[0]
		assert.Equal(t, "board/versions.yml", settings.ConfigPath)
		assert.True(t, settings.Policy.AllowMajorBumps)
		assert.False(t, settings.Policy.AllowPrereleases)
		assert.Equal(t, "ghp_env", settings.GitHubToken)
		assert.Same(t, out, spy.Options[0].Out)
		assert.False(t, spy.Options[0].DryRun)
	})

	t.Run("should let explicit flags win over the environment", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.CheckCommandSpy{}
		controller := controllers.NewCheckControllerWithLookup(spy, lookupFrom(map[string]string{
			entities.EnvConfigPath:      "board/versions.yml",
			entities.EnvAllowMajorBumps: "true",
		}))
		cmd, _ := newCobraCommand(t,
			"--config", "other.yml",
			"--allow-major-bumps=false",
			"--allow-rc",
			"--changelog", "CHANGELOG.md",
			"--dry-run",
		)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		settings := spy.Settings[0]
		assert.Equal(t, "other.yml", settings.ConfigPath)
		assert.False(t, settings.Policy.AllowMajorBumps)
		assert.True(t, settings.Policy.AllowPrereleases)
		assert.Equal(t, "CHANGELOG.md", settings.ChangelogPath)
		assert.True(t, spy.Options[0].DryRun)
	})

	t.Run("should return error for invalid settings", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.CheckCommandSpy{}
		controller := controllers.NewCheckControllerWithLookup(spy, lookupFrom(map[string]string{
			entities.EnvHTTPRetries: "many",
		}))
		cmd, _ := newCobraCommand(t)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid settings")
		assert.Empty(t, spy.Settings)
	})

	t.Run("should propagate command errors", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &commanddoubles.CheckCommandSpy{Err: errors.New("failed to load configuration: missing")}
		controller := controllers.NewCheckControllerWithLookup(spy, lookupFrom(nil))
		cmd, _ := newCobraCommand(t)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})
}

func TestCheckControllerGetBind(t *testing.T) {
	t.Parallel()

	t.Run("should expose the check subcommand without arguments", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController(&commanddoubles.CheckCommandSpy{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "check", bind.Use)
		assert.Error(t, bind.Args(&cobra.Command{}, []string{"extra"}))
	})
}

func TestCompareControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print the verdict for two refs", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCompareController(commands.NewCompareCommand())
		cmd, out := newCobraCommand(t, "--allow-major-bumps")

		// when
		err := controller.Execute(cmd, []string{"8.0.0", "v9.0.0"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "v9.0.0 > 8.0.0\nbump: major, allowed by policy: true\n", out.String())
	})
}
