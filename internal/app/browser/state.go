package browser

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"essaipanel/internal/domain"
	"essaipanel/internal/infra/telemetry"
)

// Loader produces a load result for a source. It must not fail.
type Loader interface {
	Load(ctx context.Context, source domain.Source) domain.LoadResult
}

// Options configures a State. InitialSource defaults to online.
type Options struct {
	InitialSource domain.SourceKind
	Sources       domain.SourceSet
	Loader        Loader
	Logger        *zap.Logger
	// OnApply is called with every result that replaces the snapshot.
	OnApply func(domain.LoadResult)
}

// View is the user-controlled part of the state.
type View struct {
	Source           domain.SourceKind
	Search           string
	Manufacturer     string
	Tool             *domain.ToolFilter
	Selected         int
	Tab              domain.Schema
	ShowLocalWarning bool
}

// State owns the record snapshot and the view. The view is mutated only from
// the owner's event turn; Snapshot may be read from any goroutine.
type State struct {
	logger   *zap.Logger
	loader   Loader
	sources  domain.SourceSet
	onApply  func(domain.LoadResult)
	snapshot atomic.Pointer[Snapshot]
	revision uint64
	view     View
}

func NewState(opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	source := opts.InitialSource
	if source == "" {
		source = domain.DefaultSource
	}

	s := &State{
		logger:  logger.Named("browser"),
		loader:  opts.Loader,
		sources: opts.Sources,
		onApply: opts.OnApply,
		view: View{
			Source:   source,
			Selected: -1,
			Tab:      domain.SchemaSolfex,
		},
	}
	s.snapshot.Store(emptySnapshot(opts.Sources.Resolve(source)))
	return s
}

func (s *State) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// View returns a copy of the current view.
func (s *State) View() View {
	view := s.view
	if view.Tool != nil {
		tool := *view.Tool
		view.Tool = &tool
	}
	return view
}

// CurrentSource resolves the active source kind to its location.
func (s *State) CurrentSource() domain.Source {
	return s.sources.Resolve(s.view.Source)
}

// Fetch runs the loader without touching the state, so it can run off the
// owner's turn. Resolve source with CurrentSource on the owner's turn and
// pass the result to Apply.
func (s *State) Fetch(ctx context.Context, source domain.Source) domain.LoadResult {
	if s.loader == nil {
		return domain.Empty(source, fmt.Errorf("%w: no loader configured", domain.ErrInvalidSource))
	}
	return s.loader.Load(ctx, source)
}

// Reload fetches the current source and applies the result.
func (s *State) Reload(ctx context.Context) domain.LoadResult {
	result := s.Fetch(ctx, s.CurrentSource())
	s.Apply(result)
	return result
}

// Apply swaps in a snapshot built from result and resets the selection and
// the filters. Results for a source kind other than the active one are
// dropped and Apply reports false.
func (s *State) Apply(result domain.LoadResult) bool {
	if result.Source.Kind != "" && result.Source.Kind != s.view.Source {
		s.logger.Debug("dropping stale load result",
			telemetry.SourceField(string(result.Source.Kind)),
			telemetry.LoadIDField(result.ID),
		)
		return false
	}

	prev := s.snapshot.Load()
	s.revision++
	next := NewSnapshot(s.revision, result)
	s.snapshot.Store(next)

	s.view.Selected = -1
	s.view.Tool = nil
	s.view.Manufacturer = ""

	if prev.Revision > 0 && !result.IsEmpty() && prev.Fingerprint == next.Fingerprint {
		s.logger.Info("tool database unchanged",
			telemetry.EventField(telemetry.EventLoadUnchanged),
			telemetry.LoadIDField(result.ID),
			telemetry.RecordsField(len(next.Items)),
		)
	}
	if s.onApply != nil {
		s.onApply(result)
	}
	return true
}

// SetSource changes the active source kind. It reports whether the kind
// changed; the caller reloads only then. Switching to local raises the
// local warning.
func (s *State) SetSource(kind domain.SourceKind) (bool, error) {
	if kind != domain.SourceLocal && kind != domain.SourceOnline {
		return false, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidSource, kind)
	}
	if kind == s.view.Source {
		return false, nil
	}
	s.view.Source = kind
	s.view.ShowLocalWarning = kind == domain.SourceLocal
	s.logger.Info("source switched",
		telemetry.EventField(telemetry.EventSourceSwitch),
		telemetry.SourceField(string(kind)),
	)
	return true, nil
}

// SwitchSource sets the source and reloads when it changed.
func (s *State) SwitchSource(ctx context.Context, kind domain.SourceKind) (bool, error) {
	changed, err := s.SetSource(kind)
	if err != nil || !changed {
		return false, err
	}
	s.Reload(ctx)
	return true, nil
}

// ToggleSource flips between local and online.
func (s *State) ToggleSource() domain.SourceKind {
	next := domain.SourceLocal
	if s.view.Source == domain.SourceLocal {
		next = domain.SourceOnline
	}
	_, _ = s.SetSource(next)
	return next
}

func (s *State) AcknowledgeLocalWarning() {
	s.view.ShowLocalWarning = false
}

func (s *State) SetSearch(text string) {
	s.view.Search = text
}

// SetManufacturer sets the manufacturer filter; "" clears it.
func (s *State) SetManufacturer(name string) {
	s.view.Manufacturer = name
}

func (s *State) ClearManufacturer() {
	s.view.Manufacturer = ""
}

// CycleManufacturer steps through the manufacturer list, ending at no filter.
func (s *State) CycleManufacturer() string {
	names := s.Snapshot().Manufacturers
	if len(names) == 0 {
		s.view.Manufacturer = ""
		return ""
	}
	next := names[0]
	for i, name := range names {
		if name != s.view.Manufacturer {
			continue
		}
		if i+1 < len(names) {
			next = names[i+1]
		} else {
			next = ""
		}
		break
	}
	s.view.Manufacturer = next
	return next
}

// FilterByFamily installs a family filter seeded from the item at index.
// Items without an essai part leave the filter unchanged.
func (s *State) FilterByFamily(index int) bool {
	item, ok := s.Snapshot().Item(index)
	if !ok {
		return false
	}
	filter, ok := domain.FamilyFilterFor(item)
	if !ok {
		return false
	}
	s.view.Tool = &filter
	return true
}

// FilterByClass installs a class filter seeded from the item at index.
func (s *State) FilterByClass(index int) bool {
	item, ok := s.Snapshot().Item(index)
	if !ok {
		return false
	}
	filter, ok := domain.ClassFilterFor(item)
	if !ok {
		return false
	}
	s.view.Tool = &filter
	return true
}

func (s *State) SetToolFilter(filter domain.ToolFilter) {
	s.view.Tool = &filter
}

func (s *State) ClearToolFilter() {
	s.view.Tool = nil
}

// Chip is the label of the active tool filter, or "".
func (s *State) Chip() string {
	if s.view.Tool == nil {
		return ""
	}
	return s.view.Tool.Label()
}

func (s *State) Criteria() domain.Criteria {
	return domain.Criteria{
		Manufacturer: s.view.Manufacturer,
		Tool:         s.view.Tool,
		Search:       s.view.Search,
	}
}

// Visible returns the indices of the items that pass the current criteria.
func (s *State) Visible() []int {
	return s.Criteria().Filter(s.Snapshot().Items)
}

// Toggle selects the item at index, or clears the selection when it is
// already selected.
func (s *State) Toggle(index int) error {
	if _, ok := s.Snapshot().Item(index); !ok {
		return fmt.Errorf("%w: %d", domain.ErrSelectionOutOfRange, index)
	}
	if s.view.Selected == index {
		s.view.Selected = -1
		return nil
	}
	s.view.Selected = index
	return nil
}

func (s *State) Select(index int) error {
	if _, ok := s.Snapshot().Item(index); !ok {
		return fmt.Errorf("%w: %d", domain.ErrSelectionOutOfRange, index)
	}
	s.view.Selected = index
	return nil
}

func (s *State) ClearSelection() {
	s.view.Selected = -1
}

func (s *State) Selected() (domain.ToolItem, bool) {
	return s.Snapshot().Item(s.view.Selected)
}

func (s *State) SetTab(schema domain.Schema) {
	s.view.Tab = schema
}

func (s *State) NextTab() domain.Schema {
	s.view.Tab = s.view.Tab.Next()
	return s.view.Tab
}

// Details returns the grouped display fields of the selection, or nil.
func (s *State) Details() []DetailGroup {
	item, ok := s.Selected()
	if !ok {
		return nil
	}
	return DetailGroups(item)
}

// ActiveSchemaTable renders the active tab against the global key set.
func (s *State) ActiveSchemaTable() []SchemaRow {
	snapshot := s.Snapshot()
	var section *domain.Section
	if item, ok := s.Selected(); ok {
		section = item.Section(s.view.Tab)
	}
	return SchemaTable(snapshot.Keys.For(s.view.Tab), section)
}
