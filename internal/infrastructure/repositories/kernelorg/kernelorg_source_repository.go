package kernelorg

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/santhosh-tekuri/jsonschema/v6"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/httpclient"
)

const (
	sourceName    = "kernelorg"
	stableMoniker = "stable"
	schemaURL     = "https://www.kernel.org/releases.schema.json"
)

//go:embed releases.schema.json
var releasesSchemaJSON []byte

var loadReleasesSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(releasesSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to decode releases schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to register releases schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// releaseFeed is the subset of kernel.org's releases.json this source reads.
type releaseFeed struct {
	Releases []release `json:"releases"`
}

type release struct {
	Moniker string `json:"moniker"`
	Version string `json:"version"`
}

// KernelOrgSourceRepository implements repositories.SourceRepository using the
// kernel.org release feed. It always reports the current "stable" release.
type KernelOrgSourceRepository struct {
	client  *retryablehttp.Client
	feedURL string
}

// NewKernelOrgSourceRepository creates a kernel.org source from the run settings.
func NewKernelOrgSourceRepository(settings *entities.Settings) repositories.SourceRepository {
	feedURL := settings.KernelFeedURL
	if feedURL == "" {
		feedURL = entities.DefaultKernelFeedURL
	}
	return &KernelOrgSourceRepository{
		client:  httpclient.NewRetryableClient(settings.HTTPTimeout, settings.HTTPRetries),
		feedURL: feedURL,
	}
}

func (it *KernelOrgSourceRepository) Name() string { return sourceName }

// LatestVersion returns the stable kernel version. The feed publishes bare
// versions ("6.12.3"); when the pinned ref carries a "v" marker the candidate gets one too.
func (it *KernelOrgSourceRepository) LatestVersion(
	ctx context.Context,
	component entities.Component,
	_ entities.BumpPolicy,
) (string, bool, error) {
	feed, err := it.fetchFeed(ctx)
	if err != nil {
		return "", false, err
	}

	version, found := feed.stable()
	if !found {
		logger.Debugf("[%s] feed has no %q release", sourceName, stableMoniker)
		return "", false, nil
	}

	if strings.HasPrefix(strings.TrimSpace(component.Ref), "v") {
		version = "v" + version
	}
	return version, true, nil
}

func (it *KernelOrgSourceRepository) fetchFeed(ctx context.Context) (*releaseFeed, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, it.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", it.feedURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := it.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", it.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, it.feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", it.feedURL, err)
	}

	if err = validateFeed(body); err != nil {
		return nil, err
	}

	var feed releaseFeed
	if err = json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode release feed: %w", err)
	}
	return &feed, nil
}

func validateFeed(body []byte) error {
	schema, err := loadReleasesSchema()
	if err != nil {
		return err
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("release feed is not valid JSON: %w", err)
	}
	if err = schema.Validate(instance); err != nil {
		return fmt.Errorf("release feed does not match the expected shape: %w", err)
	}
	return nil
}

func (f *releaseFeed) stable() (string, bool) {
	for _, r := range f.Releases {
		if r.Moniker == stableMoniker {
			return r.Version, true
		}
	}
	return "", false
}
