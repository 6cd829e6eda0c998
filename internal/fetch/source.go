package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal"
)

const (
	DefaultTimeout   = 45 * time.Second
	DefaultUserAgent = "almanac/1.0 (forecast archiver)"
)

type Option func(*Source)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		s.client.Timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(s *Source) {
		s.userAgent = userAgent
	}
}

// Source issues blocking HTTP GETs against forecast endpoints and
// validates what comes back. It holds no per-request state.
type Source struct {
	logger    *zap.Logger
	client    *http.Client
	userAgent string
}

func New(opts ...Option) *Source {
	s := &Source{
		logger:    zap.NewNop(),
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves one endpoint's payload. The returned Document carries
// the raw response body verbatim. Any failure is one of *ConnectionError,
// *StatusError or *PayloadError; no partial document is returned.
func (s *Source) Fetch(ctx context.Context, endpoint internal.Endpoint) (*internal.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL, nil)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint.URL, Err: err}
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("issuing request",
		zap.String("endpoint", endpoint.ID),
		zap.String("url", endpoint.URL),
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			URL:    endpoint.URL,
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint.URL, Err: err}
	}

	if !utf8.Valid(body) {
		return nil, &PayloadError{URL: endpoint.URL, Err: errors.New("body is not valid UTF-8")}
	}

	// Syntactic check only. The document's shape is never inspected.
	if !json.Valid(body) {
		return nil, &PayloadError{URL: endpoint.URL, Err: errors.New("body is not valid JSON")}
	}

	return &internal.Document{
		Endpoint:   endpoint,
		Body:       body,
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now(),
	}, nil
}
