package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal"
	"github.com/meteolog/almanac/internal/catalog"
	"github.com/meteolog/almanac/internal/fetch"
)

// DefaultPause is the blocking wait between consecutive endpoints.
const DefaultPause = 2 * time.Second

const timestampLayout = "02/01/2006 15:04:05"

type Option func(*Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithSource(source *fetch.Source) Option {
	return func(r *Runner) {
		r.source = source
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(r *Runner) {
		r.repository = repository
	}
}

func WithEndpoints(endpoints []internal.Endpoint) Option {
	return func(r *Runner) {
		r.endpoints = endpoints
	}
}

func WithPause(pause time.Duration) Option {
	return func(r *Runner) {
		r.pause = pause
	}
}

// Runner drives one fetch-validate-persist pass over the configured
// endpoints, strictly in declaration order and strictly sequential.
type Runner struct {
	logger     *zap.Logger
	source     *fetch.Source
	repository internal.Repository
	endpoints  []internal.Endpoint
	pause      time.Duration

	mu   sync.RWMutex
	last *catalog.Catalog
}

func New(opts ...Option) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		pause:  DefaultPause,
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process executes one endpoint's pipeline: fetch, validate, persist,
// confirm. Every failure is terminal for this endpoint only; the
// destination file is never touched unless the payload validated.
func (r *Runner) Process(ctx context.Context, endpoint internal.Endpoint) bool {
	r.logger.Info("fetching forecast",
		zap.String("endpoint", endpoint.ID),
		zap.String("description", endpoint.Description),
		zap.String("url", endpoint.URL),
	)

	doc, err := r.source.Fetch(ctx, endpoint)
	if err != nil {
		r.logFetchError(endpoint, err)
		return false
	}

	if err := r.repository.Write(ctx, endpoint.File, bytes.NewReader(doc.Body)); err != nil {
		r.logger.Error("persist failed",
			zap.String("endpoint", endpoint.ID),
			zap.String("file", endpoint.File),
			zap.Error(err),
		)
		return false
	}

	info, err := r.repository.Stat(ctx, endpoint.File)
	if err != nil {
		r.logger.Warn("written file could not be confirmed",
			zap.String("endpoint", endpoint.ID),
			zap.String("file", endpoint.File),
			zap.Error(err),
		)
		return true
	}

	r.logger.Info("forecast saved",
		zap.String("endpoint", endpoint.ID),
		zap.String("file", endpoint.File),
		zap.Int64("size_bytes", info.Size),
		zap.String("modified", info.ModTime.Format(timestampLayout)),
	)

	return true
}

func (r *Runner) logFetchError(endpoint internal.Endpoint, err error) {
	var connErr *fetch.ConnectionError
	var statusErr *fetch.StatusError
	var payloadErr *fetch.PayloadError

	switch {
	case errors.As(err, &connErr):
		r.logger.Error("connection failed",
			zap.String("endpoint", endpoint.ID),
			zap.String("url", endpoint.URL),
			zap.Error(connErr.Err),
		)
	case errors.As(err, &statusErr):
		r.logger.Error("unexpected http status",
			zap.String("endpoint", endpoint.ID),
			zap.Int("status_code", statusErr.Code),
			zap.String("status", statusErr.Status),
		)
	case errors.As(err, &payloadErr):
		r.logger.Error("malformed payload",
			zap.String("endpoint", endpoint.ID),
			zap.Error(payloadErr.Err),
		)
	default:
		r.logger.Error("fetch failed",
			zap.String("endpoint", endpoint.ID),
			zap.Error(err),
		)
	}
}

// Run processes every endpoint in order, pausing between consecutive
// endpoints, and returns the run's catalog. Per-endpoint failures never
// abort the run.
func (r *Runner) Run(ctx context.Context) *catalog.Catalog {
	runID := uuid.Must(uuid.NewUUID())
	cat := catalog.New(runID.String())

	r.logger.Info("starting forecast run",
		zap.String("run_id", cat.RunID),
		zap.Int("endpoints", len(r.endpoints)),
	)

	for i, endpoint := range r.endpoints {
		cat.Record(endpoint.ID, r.Process(ctx, endpoint))

		if i < len(r.endpoints)-1 {
			time.Sleep(r.pause)
		}
	}

	cat.Finish(time.Now())

	for _, endpoint := range r.endpoints {
		if !cat.Outcomes[endpoint.ID] {
			cat.AddFile(catalog.FileStatus{
				EndpointID: endpoint.ID,
				File:       endpoint.File,
				Available:  false,
			})
			r.logger.Info("file unavailable",
				zap.String("endpoint", endpoint.ID),
				zap.String("file", endpoint.File),
			)
			continue
		}

		info, err := r.repository.Stat(ctx, endpoint.File)
		if err != nil {
			cat.AddFile(catalog.FileStatus{
				EndpointID: endpoint.ID,
				File:       endpoint.File,
				Available:  false,
			})
			r.logger.Info("file unavailable",
				zap.String("endpoint", endpoint.ID),
				zap.String("file", endpoint.File),
			)
			continue
		}

		cat.AddFile(catalog.FileStatus{
			EndpointID: endpoint.ID,
			File:       endpoint.File,
			Available:  true,
			SizeBytes:  info.Size,
		})
		r.logger.Info("file available",
			zap.String("endpoint", endpoint.ID),
			zap.String("file", endpoint.File),
			zap.Int64("size_bytes", info.Size),
		)
	}

	r.logger.Info("run complete",
		zap.String("run_id", cat.RunID),
		zap.Int("total", cat.Attempted),
		zap.Int("succeeded", cat.Succeeded),
		zap.Int("failed", cat.Failed),
		zap.String("success_rate", fmt.Sprintf("%.1f%%", cat.SuccessRate)),
		zap.String("completed_at", cat.EndTime.Format(timestampLayout)),
	)

	r.mu.Lock()
	r.last = cat
	r.mu.Unlock()

	return cat
}

// LastCatalog returns the most recent run's catalog, or nil if no run
// has completed yet.
func (r *Runner) LastCatalog() *catalog.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}
