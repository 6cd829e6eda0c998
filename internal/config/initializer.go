package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal"
	"github.com/meteolog/almanac/internal/fetch"
	"github.com/meteolog/almanac/internal/local"
	"github.com/meteolog/almanac/internal/runner"
	"github.com/meteolog/almanac/internal/s3"
)

// InitializeRunner wires the configured source, repository and endpoint
// table into a ready Runner.
func InitializeRunner(almanac *Almanac, logger *zap.Logger) (*runner.Runner, error) {
	source := fetch.New(
		fetch.WithLogger(logger),
		fetch.WithUserAgent(almanac.Fetcher.UserAgent),
		fetch.WithTimeout(time.Duration(almanac.Fetcher.TimeoutSeconds)*time.Second),
	)

	var repository internal.Repository
	switch almanac.Repository.Type {
	case "local":
		repository = local.New(
			almanac.Repository.Local.Path,
			local.WithLogger(logger),
		)
	case "s3":
		repository = s3.New(
			s3.WithLogger(logger),
			s3.WithRegion(almanac.Repository.S3.Region),
			s3.WithBucket(almanac.Repository.S3.Bucket),
			s3.WithPrefix(almanac.Repository.S3.Prefix),
			s3.WithEndpoint(almanac.Repository.S3.Endpoint),
			s3.WithForcePathStyle(almanac.Repository.S3.ForcePathStyle),
		)
	default:
		return nil, fmt.Errorf("unknown repository type: %s", almanac.Repository.Type)
	}

	endpoints := make([]internal.Endpoint, 0, len(almanac.Fetcher.Endpoints))
	for _, e := range almanac.Fetcher.Endpoints {
		endpoints = append(endpoints, internal.Endpoint{
			ID:          e.ID,
			URL:         e.URL,
			File:        e.File,
			Description: e.Description,
		})
	}

	return runner.New(
		runner.WithLogger(logger),
		runner.WithSource(source),
		runner.WithRepository(repository),
		runner.WithEndpoints(endpoints),
		runner.WithPause(time.Duration(almanac.Fetcher.PauseSeconds)*time.Second),
	), nil
}
