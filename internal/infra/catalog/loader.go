package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"essaipanel/internal/domain"
	"essaipanel/internal/infra/catalog/normalizer"
	"essaipanel/internal/infra/telemetry"
)

// Loader turns a source into normalized tool items. It never fails: every
// problem is logged and reported as an Empty result.
type Loader struct {
	logger  *zap.Logger
	fetcher Fetcher
	metrics domain.Metrics
	group   singleflight.Group
}

func NewLoader(logger *zap.Logger, fetcher Fetcher, metrics domain.Metrics) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = NewSourceFetcher(0)
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Loader{
		logger:  logger.Named("catalog"),
		fetcher: fetcher,
		metrics: metrics,
	}
}

// Load reads, validates and normalizes the database at source. Concurrent
// loads of the same source share one fetch.
func (l *Loader) Load(ctx context.Context, source domain.Source) domain.LoadResult {
	if ctx == nil {
		ctx = context.Background()
	}
	value, _, _ := l.group.Do(source.String(), func() (any, error) {
		return l.load(ctx, source), nil
	})
	result, _ := value.(domain.LoadResult)
	return result
}

// LoadItems is Load without the metadata.
func (l *Loader) LoadItems(ctx context.Context, source domain.Source) []domain.ToolItem {
	return l.Load(ctx, source).Items
}

func (l *Loader) load(ctx context.Context, source domain.Source) domain.LoadResult {
	started := time.Now()
	loadID := uuid.NewString()
	logger := l.logger.With(
		telemetry.LoadIDField(loadID),
		telemetry.SourceField(string(source.Kind)),
		telemetry.LocationField(source.Location),
	)

	result := l.read(ctx, source)
	result.ID = loadID
	result.Duration = time.Since(started)

	l.metrics.ObserveLoad(source.Kind, result.Outcome, result.Duration)
	l.metrics.SetRecords(source.Kind, len(result.Items))

	if result.IsEmpty() {
		logger.Warn("tool database unavailable",
			telemetry.EventField(telemetry.EventLoadEmpty),
			telemetry.DurationField(result.Duration),
			zap.Error(result.Reason),
		)
		return result
	}
	logger.Info("tool database loaded",
		telemetry.EventField(telemetry.EventLoadSuccess),
		telemetry.RecordsField(len(result.Items)),
		telemetry.DurationField(result.Duration),
	)
	return result
}

func (l *Loader) read(ctx context.Context, source domain.Source) domain.LoadResult {
	data, err := l.fetcher.Fetch(ctx, source)
	if err != nil {
		return domain.Empty(source, loadError("fetch", domain.CodeUnavailable, err))
	}
	records, err := ParseDocument(data)
	if err != nil {
		return domain.Empty(source, loadError("parse", domain.CodeDataLoss, err))
	}
	return domain.Loaded(source, normalizer.NormalizeTools(records))
}

// loadError tags err with the failing step. Sentinels stay reachable through
// errors.Is.
func loadError(op string, fallback domain.ErrorCode, err error) error {
	code, ok := domain.CodeFrom(err)
	if !ok {
		code = fallback
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = domain.CodeCanceled
	}
	return domain.Wrap(code, op, err)
}
