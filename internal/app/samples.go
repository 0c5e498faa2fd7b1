package app

import (
	"context"
	"fmt"
	"path/filepath"

	"diplomagen/internal/config"
	"diplomagen/internal/transport"

	"github.com/charmbracelet/log"
)

// SampleFetcher downloads sample files from the backend
type SampleFetcher interface {
	FetchSample(ctx context.Context, endpoint string) (*transport.Artifact, error)
}

// Saver stores a downloaded blob under name
type Saver interface {
	Save(ctx context.Context, name string, blob []byte) (string, error)
}

// SamplesOptions configures which samples to download
type SamplesOptions struct {
	Template bool
	Data     bool
}

// SamplesApp downloads the sample template and spreadsheet
type SamplesApp struct {
	config  *config.Config
	fetcher SampleFetcher
	saver   Saver
	logger  *log.Logger
}

// NewSamplesApp creates a new samples application
func NewSamplesApp(cfg *config.Config, fetcher SampleFetcher, saver Saver, logger *log.Logger) *SamplesApp {
	return &SamplesApp{
		config:  cfg,
		fetcher: fetcher,
		saver:   saver,
		logger:  logger,
	}
}

// Run downloads the selected samples and returns the saved paths
func (s *SamplesApp) Run(ctx context.Context, opts *SamplesOptions) ([]string, error) {
	type sample struct {
		endpoint string
		fallback string
	}
	var samples []sample
	if opts.Template {
		samples = append(samples, sample{s.config.Server.SampleTemplateEndpoint, s.config.Form.SampleTemplateName})
	}
	if opts.Data {
		samples = append(samples, sample{s.config.Server.SampleDataEndpoint, s.config.Form.SampleDataName})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("nothing to download: select the template, the data file or both")
	}

	var paths []string
	for _, smp := range samples {
		path, err := s.fetch(ctx, smp.endpoint, smp.fallback)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *SamplesApp) fetch(ctx context.Context, endpoint, fallback string) (string, error) {
	s.logger.Info("Downloading sample", "endpoint", endpoint)

	artifact, err := s.fetcher.FetchSample(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", endpoint, err)
	}
	blob, err := artifact.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", endpoint, err)
	}

	name := fallback
	// never trust a server-supplied path
	if n := filepath.Base(artifact.Filename); artifact.Filename != "" && n != "." && n != string(filepath.Separator) {
		name = n
	}
	return s.saver.Save(ctx, name, blob)
}
