package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"essaipanel/internal/domain"
)

const sampleDocument = `{
  "tools": [
    {
      "tool_name": "T1",
      "sc_tool_type": "drilling",
      "Solfex": {"A": 1, "B": 2},
      "drilling_tool": {"Length": "10"},
      "milling_tool": {"HolderName": "H1", "Message3": "Harvey"}
    },
    {
      "tool_name": "T2",
      "sc_tool_type": "milling",
      "Solfex": {"B": 3, "C": 4},
      "milling_tool": {"Message2": "E-1", "Diameter": 12.5}
    }
  ]
}`

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []domain.LoadOutcome
	records  map[domain.SourceKind]int
}

func (m *recordingMetrics) ObserveLoad(_ domain.SourceKind, outcome domain.LoadOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) SetRecords(source domain.SourceKind, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[domain.SourceKind]int)
	}
	m.records[source] = count
}

type stubFetcher struct {
	data  []byte
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (s *stubFetcher) Fetch(_ context.Context, _ domain.Source) ([]byte, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.data, s.err
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.DefaultLocalFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LocalDocument(t *testing.T) {
	metrics := &recordingMetrics{}
	loader := NewLoader(zap.NewNop(), NewSourceFetcher(0), metrics)

	result := loader.Load(context.Background(), domain.LocalSource(writeDocument(t, sampleDocument)))
	require.False(t, result.IsEmpty())
	require.NoError(t, result.Reason)
	require.NotEmpty(t, result.ID)
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	require.Equal(t, "T1", first.Name)
	require.Equal(t, "10", first.OutsideLength)
	require.Equal(t, "H1", first.HolderName)
	require.Equal(t, "Harvey", first.Manufacturer)

	second := result.Items[1]
	require.Equal(t, "E-1", second.EssaiPart)
	require.Equal(t, "12.5", second.Diameter)

	require.Equal(t, []domain.LoadOutcome{domain.LoadOutcomeLoaded}, metrics.outcomes)
	require.Equal(t, 2, metrics.records[domain.SourceLocal])
}

func TestLoader_RemoteDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	loader := NewLoader(nil, NewSourceFetcherWithClient(server.Client()), nil)
	items := loader.LoadItems(context.Background(), domain.RemoteSource(server.URL))
	require.Len(t, items, 2)
}

func TestLoader_FailuresBecomeEmpty(t *testing.T) {
	cases := []struct {
		name    string
		fetcher Fetcher
		want    error
	}{
		{name: "not json", fetcher: &stubFetcher{data: []byte("not json")}, want: domain.ErrParseFailed},
		{name: "blank", fetcher: &stubFetcher{data: []byte("")}, want: domain.ErrEmptyDocument},
		{name: "wrong shape", fetcher: &stubFetcher{data: []byte(`[1,2]`)}, want: domain.ErrSchemaMismatch},
		{name: "fetch error", fetcher: &stubFetcher{err: domain.ErrFetchFailed}, want: domain.ErrFetchFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			metrics := &recordingMetrics{}
			loader := NewLoader(zap.NewNop(), tc.fetcher, metrics)

			result := loader.Load(context.Background(), domain.RemoteSource("https://example.com/db.txt"))
			require.True(t, result.IsEmpty())
			require.Empty(t, result.Items)
			require.True(t, errors.Is(result.Reason, tc.want), "reason: %v", result.Reason)
			require.Equal(t, []domain.LoadOutcome{domain.LoadOutcomeEmpty}, metrics.outcomes)
			require.Equal(t, 0, metrics.records[domain.SourceOnline])
		})
	}
}

func TestLoader_ReasonCarriesStep(t *testing.T) {
	cases := []struct {
		name    string
		fetcher Fetcher
		op      string
		code    domain.ErrorCode
	}{
		{name: "parse", fetcher: &stubFetcher{data: []byte("not json")}, op: "parse", code: domain.CodeDataLoss},
		{name: "fetch", fetcher: &stubFetcher{err: domain.ErrFetchFailed}, op: "fetch", code: domain.CodeUnavailable},
		{name: "cancelled", fetcher: &stubFetcher{err: context.Canceled}, op: "fetch", code: domain.CodeCanceled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader(zap.NewNop(), tc.fetcher, nil)
			result := loader.Load(context.Background(), domain.RemoteSource("https://example.com/db.txt"))

			var coded *domain.Error
			require.True(t, errors.As(result.Reason, &coded))
			require.Equal(t, tc.op, coded.Op)
			require.Equal(t, tc.code, coded.Code)
		})
	}
}

func TestLoader_MissingLocalFile(t *testing.T) {
	loader := NewLoader(zap.NewNop(), nil, nil)
	items := loader.LoadItems(context.Background(), domain.LocalSource(filepath.Join(t.TempDir(), "absent.txt")))
	require.Empty(t, items)
}

func TestLoader_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	loader := NewLoader(zap.New(core), &stubFetcher{data: []byte("not json")}, nil)

	result := loader.Load(context.Background(), domain.RemoteSource("https://example.com/db.txt"))
	require.True(t, result.IsEmpty())

	entries := logs.FilterMessage("tool database unavailable").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, result.ID, fields["load_id"])
	require.Equal(t, string(domain.SourceOnline), fields["source"])
}

func TestLoader_SharesConcurrentLoads(t *testing.T) {
	fetcher := &stubFetcher{data: []byte(sampleDocument), gate: make(chan struct{})}
	loader := NewLoader(zap.NewNop(), fetcher, nil)
	source := domain.RemoteSource("https://example.com/db.txt")

	var wg sync.WaitGroup
	results := make([]domain.LoadResult, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = loader.Load(context.Background(), source)
		}(i)
	}

	require.Eventually(t, func() bool { return fetcher.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	require.Equal(t, int32(1), fetcher.calls.Load())
	for _, result := range results {
		require.Len(t, result.Items, 2)
		require.Equal(t, results[0].ID, result.ID)
	}
}
