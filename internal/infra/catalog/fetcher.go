package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"essaipanel/internal/domain"
)

const (
	defaultRequestTimeout = time.Duration(domain.DefaultRequestTimeoutSeconds) * time.Second
	maxDocumentBytes      = 64 << 20
	userAgent             = "essaipanel"
)

// Fetcher returns the raw text of a tool database.
type Fetcher interface {
	Fetch(ctx context.Context, source domain.Source) ([]byte, error)
}

// SourceFetcher reads local files and performs plain GET requests.
type SourceFetcher struct {
	client *http.Client
}

// NewSourceFetcher builds a fetcher whose HTTP requests time out after timeout.
func NewSourceFetcher(timeout time.Duration) *SourceFetcher {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &SourceFetcher{client: &http.Client{Timeout: timeout}}
}

// NewSourceFetcherWithClient uses client as-is.
func NewSourceFetcherWithClient(client *http.Client) *SourceFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &SourceFetcher{client: client}
}

func (f *SourceFetcher) Fetch(ctx context.Context, source domain.Source) ([]byte, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	switch source.Kind {
	case domain.SourceLocal:
		return readLocal(source.Location)
	default:
		return f.fetchRemote(ctx, source.Location)
	}
}

func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrFetchFailed, path, err)
	}
	return data, nil
}

func (f *SourceFetcher) fetchRemote(ctx context.Context, endpoint string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}
	return data, nil
}
