package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/pinwatch/internal/domain/repositories"
	clRepo "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/changelog"
	ghRepo "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/github"
	jsonRepo "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/jsonsummary"
	kernelRepo "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/kernelorg"
	yamlRepo "github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/yamlconfig"
)

const (
	sourceGitHub    = "github"
	sourceKernelOrg = "kernelorg"
)

// DefaultBindings is the fixed set of tracked components, in processing order.
func DefaultBindings() []ComponentBinding {
	return []ComponentBinding{
		{Component: "qemu", Source: sourceGitHub, RequiresLocator: true},
		{Component: "busybox", Source: sourceGitHub, RequiresLocator: true, UnderscoreTags: true},
		{Component: "uboot", Source: sourceGitHub, RequiresLocator: true},
		{Component: "atf", Source: sourceGitHub, RequiresLocator: true},
		{Component: "linux", Source: sourceKernelOrg},
	}
}

// NewDefaultSourceRegistry registers every source and binds the default components.
func NewDefaultSourceRegistry() *SourceRegistry {
	reg := NewSourceRegistry()
	reg.Register(sourceGitHub, ghRepo.NewGitHubSourceRepository)
	reg.Register(sourceKernelOrg, kernelRepo.NewKernelOrgSourceRepository)
	for _, binding := range DefaultBindings() {
		reg.Bind(binding)
	}
	return reg
}

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewDefaultSourceRegistry); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ConfigurationRepository {
		return yamlRepo.NewYAMLConfigurationRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.SummaryRepository {
		return jsonRepo.NewJSONSummaryRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ChangelogRepository {
		return clRepo.NewFileChangelogRepository()
	}); err != nil {
		return err
	}

	return nil
}
