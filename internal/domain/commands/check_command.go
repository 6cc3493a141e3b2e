package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories"
)

// Check is the interface for the check command.
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) (*CheckResult, error)
}

// CheckOptions holds runtime options for a single run.
type CheckOptions struct {
	DryRun bool
	Out    io.Writer // receives the [bump]/[skip]/[warn] progress lines
}

// CheckResult summarizes a finished run.
type CheckResult struct {
	Updates []entities.UpdateRecord
	Written bool // true when the configuration and summary were persisted
}

// CheckCommand reconciles pinned refs against upstream releases:
// load configuration -> ask each bound source -> compare -> gate -> persist.
type CheckCommand struct {
	sourceRegistry *infraRepos.SourceRegistry
	configRepo     repositories.ConfigurationRepository
	summaryRepo    repositories.SummaryRepository
	changelogRepo  repositories.ChangelogRepository
}

// NewCheckCommand creates a new CheckCommand with the given collaborators.
func NewCheckCommand(
	sourceRegistry *infraRepos.SourceRegistry,
	configRepo repositories.ConfigurationRepository,
	summaryRepo repositories.SummaryRepository,
	changelogRepo repositories.ChangelogRepository,
) *CheckCommand {
	return &CheckCommand{
		sourceRegistry: sourceRegistry,
		configRepo:     configRepo,
		summaryRepo:    summaryRepo,
		changelogRepo:  changelogRepo,
	}
}

// Execute runs one reconciliation pass. Only configuration loading and
// persistence failures are returned; per-component problems are reported and skipped.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (*CheckResult, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	cfg, err := it.configRepo.Load(settings.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debugf("Loaded %d components from %s", len(cfg.Names()), settings.ConfigPath)

	result := &CheckResult{}
	for _, binding := range it.sourceRegistry.Bindings() {
		record, ok := it.reconcile(ctx, cfg, binding, settings, out)
		if ok {
			result.Updates = append(result.Updates, record)
		}
	}

	if len(result.Updates) == 0 {
		fmt.Fprintln(out, "No updates found.")
		return result, nil
	}

	if opts.DryRun {
		logger.Infof("Dry run: %d update(s) not written", len(result.Updates))
		return result, nil
	}

	if err = it.persist(cfg, result.Updates, settings); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}

// reconcile processes a single bound component and returns the accepted update, if any.
func (it *CheckCommand) reconcile(
	ctx context.Context,
	cfg *entities.Configuration,
	binding infraRepos.ComponentBinding,
	settings *entities.Settings,
	out io.Writer,
) (entities.UpdateRecord, bool) {
	name := binding.Component
	component, tracked := cfg.Get(name)
	if !tracked && !binding.RequiresLocator {
		return entities.UpdateRecord{}, false
	}

	source, err := it.sourceRegistry.Get(binding.Source, settings)
	if err != nil {
		fmt.Fprintf(out, "[warn] %s: %v\n", name, err)
		return entities.UpdateRecord{}, false
	}

	candidate, found, err := source.LatestVersion(ctx, component, settings.Policy)
	switch {
	case errors.Is(err, repositories.ErrUnparseableLocator):
		fmt.Fprintf(out, "[warn] %s: repo not %s or not parseable: %s\n", name, source.Name(), component.Repo)
		return entities.UpdateRecord{}, false
	case err != nil:
		fmt.Fprintf(out, "[warn] %s: lookup failed: %v\n", name, err)
		return entities.UpdateRecord{}, false
	case !found:
		logger.Debugf("[%s] %s has no candidate version", source.Name(), name)
		return entities.UpdateRecord{}, false
	}

	oldRef := cfg.CurrentRef(name)
	if binding.UnderscoreTags && !entities.IsNewerVersion(
		entities.NormalizeUnderscores(oldRef),
		entities.NormalizeUnderscores(candidate),
	) {
		logger.Debugf("[%s] %s: %s is not newer than %s", source.Name(), name, candidate, oldRef)
		return entities.UpdateRecord{}, false
	}

	return it.apply(cfg, name, oldRef, candidate, settings.Policy, out)
}

// apply runs the newer-than and policy gates and mutates the configuration on success.
func (it *CheckCommand) apply(
	cfg *entities.Configuration,
	name, oldRef, newRef string,
	policy entities.BumpPolicy,
	out io.Writer,
) (entities.UpdateRecord, bool) {
	if oldRef == "" || newRef == "" {
		return entities.UpdateRecord{}, false
	}
	if !entities.IsNewerVersion(oldRef, newRef) {
		logger.Debugf("%s is up to date (%s, upstream %s)", name, oldRef, newRef)
		return entities.UpdateRecord{}, false
	}
	if !policy.Allows(oldRef, newRef) {
		fmt.Fprintf(out, "[skip] %s: %s -> %s (blocked by policy)\n", name, oldRef, newRef)
		return entities.UpdateRecord{}, false
	}

	cfg.SetRef(name, newRef)
	fmt.Fprintf(out, "[bump] %s: %s -> %s\n", name, oldRef, newRef)
	logger.WithFields(logger.Fields{
		"component": name,
		"kind":      entities.ClassifyBump(oldRef, newRef),
	}).Debug("Bump accepted")

	return entities.UpdateRecord{Name: name, Old: oldRef, New: newRef}, true
}

// persist writes the configuration, then the summary, then the optional changelog.
func (it *CheckCommand) persist(
	cfg *entities.Configuration,
	updates []entities.UpdateRecord,
	settings *entities.Settings,
) error {
	if err := it.configRepo.Save(settings.ConfigPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.Infof("Updated %s", settings.ConfigPath)

	if err := it.summaryRepo.Write(settings.SummaryPath, updates); err != nil {
		return fmt.Errorf("failed to write update summary: %w", err)
	}
	logger.Infof("Wrote %d update(s) to %s", len(updates), settings.SummaryPath)

	if settings.ChangelogPath != "" {
		if err := it.changelogRepo.Append(settings.ChangelogPath, updates); err != nil {
			return fmt.Errorf("failed to update changelog: %w", err)
		}
		logger.Infof("Appended %d entr(ies) to %s", len(updates), settings.ChangelogPath)
	}
	return nil
}
