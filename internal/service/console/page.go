package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	services "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/services/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

// QueryRequest is a change to a page's query state. Nil fields are left
// as they are.
type QueryRequest struct {
	Search   *string
	Filters  map[string]string
	Sort     *string
	Tab      *string
	Page     *int
	PageSize *int
	Reset    bool // back to the page defaults before applying the rest
	Refresh  bool // refetch the collection first
}

// Listing is one derived page of rows plus what the UI needs around it.
type Listing struct {
	Rows       any                 `json:"rows"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	PageCount  int                 `json:"pageCount"`
	PageSize   int                 `json:"pageSize"`
	Query      listview.QueryState `json:"query"`
	Options    map[string][]string `json:"options"`
	Tabs       map[string]int      `json:"tabs,omitempty"`
	Sorts      []listview.SortKey  `json:"sorts"`
}

// Page owns one entity collection of one operator workspace. The mutex
// orders every read after the reconciliation of the mutation before it.
type Page[T listview.Identified] struct {
	def      *Definition[T]
	resource services.Resource[T]
	recorder services.MutationRecorder
	operator string
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	items    []T
	loaded   bool
	defaults listview.QueryState
	query    listview.QueryState
	pageSize int
}

// PageConfig carries a page's collaborators.
type PageConfig[T listview.Identified] struct {
	Definition *Definition[T]
	Entry      *catalog.Entity
	Resource   services.Resource[T]
	Recorder   services.MutationRecorder
	Operator   string
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewPage builds a page from its definition and catalog entry.
func NewPage[T listview.Identified](cfg PageConfig[T]) (*Page[T], error) {
	def := cfg.Definition
	key, dir, err := def.View.Sorts.Parse(cfg.Entry.Sort)
	if err != nil {
		return nil, fmt.Errorf("%s default sort: %w", def.Entity, err)
	}
	if err := checkTab(def, cfg.Entry.Tab); err != nil {
		return nil, fmt.Errorf("%s default tab: %w", def.Entity, err)
	}
	for _, f := range cfg.Entry.Filters {
		if !def.acceptsFilter(f.Name) {
			return nil, fmt.Errorf("%s: catalog filter %q has no predicate", def.Entity, f.Name)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	pageSize := cfg.Entry.PageSize
	if pageSize == 0 {
		pageSize = def.View.PageSize
	}

	defaults := listview.NewQueryState(key, dir, cfg.Entry.Tab)
	return &Page[T]{
		def:      def,
		resource: cfg.Resource,
		recorder: cfg.Recorder,
		operator: cfg.Operator,
		logger:   cfg.Logger.With("entity", def.Entity, "operator", cfg.Operator),
		now:      now,
		defaults: defaults,
		query:    defaults,
		pageSize: pageSize,
	}, nil
}

func checkTab[T listview.Identified](def *Definition[T], tab string) error {
	if listview.IsAll(tab) {
		return nil
	}
	if def.View.Tabs == nil || !def.View.Tabs.Valid(tab) {
		return domain.NewValidationError("tab", "unknown tab %q", tab)
	}
	return nil
}

// Entity returns the page's entity name.
func (p *Page[T]) Entity() string { return p.def.Entity }

// Configure replaces the page defaults with saved preferences and resets
// the query state to them.
func (p *Page[T]) Configure(prefs *models.ViewPreferences) error {
	if prefs == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	defaults := p.defaults
	if prefs.SortKey != "" {
		spec := prefs.SortKey
		if prefs.Direction != "" {
			spec += ":" + prefs.Direction
		}
		key, dir, err := p.def.View.Sorts.Parse(spec)
		if err != nil {
			return err
		}
		defaults = defaults.WithSort(key, dir)
	}
	if prefs.Tab != "" {
		if err := checkTab(p.def, prefs.Tab); err != nil {
			return err
		}
		defaults = defaults.WithTab(prefs.Tab)
	}
	if prefs.PageSize != 0 {
		if err := checkPageSize(prefs.PageSize); err != nil {
			return err
		}
		p.pageSize = prefs.PageSize
	}

	defaults.Page = 1
	p.defaults = defaults
	p.query = defaults
	return nil
}

func checkPageSize(size int) error {
	if size < config.MinPageSize || size > config.MaxPageSize {
		return domain.NewValidationError("pageSize", "must be between %d and %d", config.MinPageSize, config.MaxPageSize)
	}
	return nil
}

// Load fetches the collection unless it is already loaded. force refetches.
func (p *Page[T]) Load(ctx context.Context, token string, force bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx, token, force)
}

func (p *Page[T]) load(ctx context.Context, token string, force bool) error {
	if p.loaded && !force {
		return nil
	}
	items, err := p.resource.List(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", p.def.Entity, err)
	}
	p.items = items
	p.loaded = true
	p.logger.Debug("collection loaded", "count", len(items))
	return nil
}

// Query applies req to the page's query state and derives the visible rows.
// A page number is honored only when the same request leaves search,
// filters and tab unchanged. A rejected request leaves the state as it was.
func (p *Page[T]) Query(ctx context.Context, token string, req QueryRequest) (*Listing, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, pageSize, err := p.apply(req)
	if err != nil {
		return nil, err
	}
	if err := p.load(ctx, token, req.Refresh); err != nil {
		return nil, err
	}

	visible := p.def.View.DeriveSized(p.items, next, pageSize)
	next.Page = visible.Page
	p.query = next
	p.pageSize = pageSize

	listing := &Listing{
		Rows:       visible.Rows,
		TotalCount: visible.TotalCount,
		Page:       visible.Page,
		PageCount:  visible.PageCount,
		PageSize:   visible.PageSize,
		Query:      next,
		Options:    p.def.View.OptionsFor(p.items),
		Sorts:      p.def.View.Sorts.Keys(),
	}
	if p.def.View.Tabs != nil {
		listing.Tabs = p.def.View.Tabs.Counts(p.def.View.FilterIgnoringTab(p.items, next))
	}
	return listing, nil
}

func (p *Page[T]) apply(req QueryRequest) (listview.QueryState, int, error) {
	prior := p.query
	pageSize := p.pageSize
	if req.Reset {
		prior = p.defaults
	}
	q := prior

	if req.Search != nil {
		term := strings.TrimSpace(*req.Search)
		if len(term) > config.MaxSearchLength {
			return q, 0, domain.NewValidationError("search", "must be at most %d characters", config.MaxSearchLength)
		}
		q = q.WithSearch(term)
	}
	for name, value := range req.Filters {
		if !p.def.acceptsFilter(name) {
			return q, 0, domain.NewValidationError("filter."+name, "unknown filter for %s", p.def.Entity)
		}
		q = q.WithFilter(name, strings.TrimSpace(value))
	}
	if req.Tab != nil {
		if err := checkTab(p.def, *req.Tab); err != nil {
			return q, 0, err
		}
		q = q.WithTab(*req.Tab)
	}
	if req.Sort != nil {
		key, dir, err := p.def.View.Sorts.Parse(*req.Sort)
		if err != nil {
			return q, 0, err
		}
		if key == "" {
			key, dir = p.defaults.SortKey, p.defaults.Direction
		}
		q = q.WithSort(key, dir)
	}
	if req.PageSize != nil {
		if err := checkPageSize(*req.PageSize); err != nil {
			return q, 0, err
		}
		pageSize = *req.PageSize
	}
	if req.Page != nil && q.SameSelection(prior) {
		q = q.WithPage(*req.Page)
	}
	return q, pageSize, nil
}

// Snapshot returns a copy of the loaded collection.
func (p *Page[T]) Snapshot(ctx context.Context, token string) ([]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.load(ctx, token, false); err != nil {
		return nil, err
	}
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out, nil
}

// Create admits body, forwards it and prepends the record the server
// returns.
func (p *Page[T]) Create(ctx context.Context, token string, body json.RawMessage) (created T, err error) {
	defer func() { p.record(OpCreate, created.RecordID(), err) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.load(ctx, token, false); err != nil {
		return created, err
	}
	m, err := p.admit(OpCreate, "", nil, body)
	if err != nil {
		return created, err
	}

	created, err = p.resource.Create(ctx, token, m.Fields)
	if err != nil {
		return created, err
	}
	p.items = listview.Prepend(p.items, created)
	return created, nil
}

// Update admits body, forwards it and merges the server response over the
// local record.
func (p *Page[T]) Update(ctx context.Context, token, id string, body json.RawMessage) (updated T, err error) {
	defer func() { p.record(OpUpdate, id, err) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	prior, err := p.find(ctx, token, id)
	if err != nil {
		return updated, err
	}
	m, err := p.admit(OpUpdate, id, &prior, body)
	if err != nil {
		return updated, err
	}

	patch, err := p.resource.Update(ctx, token, id, m.Fields)
	if err != nil {
		return updated, err
	}
	return p.merge(ctx, token, id, patch)
}

// Delete forwards the removal and drops the record locally.
func (p *Page[T]) Delete(ctx context.Context, token, id string) (err error) {
	defer func() { p.record(OpDelete, id, err) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err = p.find(ctx, token, id); err != nil {
		return err
	}
	if err = p.resource.Remove(ctx, token, id); err != nil {
		return err
	}
	p.items, _ = listview.Remove(p.items, id)
	return nil
}

// SetStatus forwards an activity toggle and merges the response.
func (p *Page[T]) SetStatus(ctx context.Context, token, id string, active bool) (updated T, err error) {
	defer func() { p.record(OpStatus, id, err) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	prior, err := p.find(ctx, token, id)
	if err != nil {
		return updated, err
	}
	if p.def.AdmitStatus != nil {
		if err = p.def.AdmitStatus(prior, active, p.now()); err != nil {
			return updated, err
		}
	}

	patch, err := p.resource.SetStatus(ctx, token, id, active)
	if err != nil {
		return updated, err
	}
	return p.merge(ctx, token, id, patch)
}

func (p *Page[T]) find(ctx context.Context, token, id string) (T, error) {
	if err := p.load(ctx, token, false); err != nil {
		var zero T
		return zero, err
	}
	rec, ok := listview.Find(p.items, id)
	if !ok {
		return rec, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", p.def.Entity, id)}
	}
	return rec, nil
}

func (p *Page[T]) admit(op Operation, id string, prior *T, body json.RawMessage) (*Mutation[T], error) {
	fields := map[string]json.RawMessage{}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, domain.NewValidationError("", "body must be a JSON object")
		}
	}
	delete(fields, "_id")

	m := &Mutation[T]{
		Op:     op,
		ID:     id,
		Prior:  prior,
		Items:  p.items,
		Fields: fields,
		Now:    p.now(),
	}
	if p.def.Admit != nil {
		if err := p.def.Admit(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// merge folds an accepted server response into the collection. A response
// that cannot be merged forces a reload, so the collection shows what the
// upstream now holds instead of the prior record.
func (p *Page[T]) merge(ctx context.Context, token, id string, patch json.RawMessage) (T, error) {
	items, merged, err := listview.MergeByID(p.items, id, patch)
	if err == nil {
		p.items = items
		return merged, nil
	}

	p.logger.Warn("could not merge server response, reloading", "id", id, "error", err)
	var zero T
	if err := p.load(ctx, token, true); err != nil {
		return zero, err
	}
	rec, ok := listview.Find(p.items, id)
	if !ok {
		return zero, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found after update", p.def.Entity, id)}
	}
	return rec, nil
}

func (p *Page[T]) record(op Operation, id string, err error) {
	if p.recorder != nil {
		p.recorder.RecordMutation(p.def.Entity, string(op), err)
	}
	if err != nil {
		p.logger.Warn("mutation failed", "op", op, "id", id, "error", err)
		return
	}
	p.logger.Info("mutation applied", "op", op, "id", id)
}
