package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"essaipanel/internal/infra/telemetry"
)

const defaultReloadDebounce = 200 * time.Millisecond

// Change reports that the watched database file was written.
type Change struct {
	Path string
	At   time.Time
}

// Watcher follows the local tool database file. It watches the parent
// directory so editors that replace the file by rename are seen too.
type Watcher struct {
	logger   *zap.Logger
	path     string
	debounce time.Duration
}

func NewWatcher(logger *zap.Logger, path string) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		logger:   logger.Named("watcher"),
		path:     filepath.Clean(path),
		debounce: defaultReloadDebounce,
	}
}

// WithDebounce overrides the quiet period before a change is reported.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Watch starts watching and returns a channel of debounced changes. The
// channel is closed once ctx is done.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(w.path) == "" || w.path == "." {
		return nil, fmt.Errorf("watch path is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan Change, 1)
	go w.run(ctx, watcher, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- Change) {
	defer close(out)
	defer watcher.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Warn("database watcher error",
					telemetry.EventField(telemetry.EventWatchFailure),
					zap.Error(err),
				)
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.shouldReload(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			w.logger.Info("database file changed",
				telemetry.EventField(telemetry.EventWatchReload),
				telemetry.PathField(w.path),
			)
			select {
			case out <- Change{Path: w.path, At: time.Now()}:
			default:
			}
		}
	}
}

func (w *Watcher) shouldReload(event fsnotify.Event) bool {
	if event.Name == "" || filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
