package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	services "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/services/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

// EntityPage is a Page with its record type erased, for handlers that
// dispatch on the entity name.
type EntityPage interface {
	Entity() string
	Configure(prefs *models.ViewPreferences) error
	Load(ctx context.Context, token string, force bool) error
	Query(ctx context.Context, token string, req QueryRequest) (*Listing, error)
	Create(ctx context.Context, token string, body json.RawMessage) (any, error)
	Update(ctx context.Context, token, id string, body json.RawMessage) (any, error)
	Delete(ctx context.Context, token, id string) error
	SetStatus(ctx context.Context, token, id string, active bool) (any, error)
}

type erased[T listview.Identified] struct {
	*Page[T]
}

func (e erased[T]) Create(ctx context.Context, token string, body json.RawMessage) (any, error) {
	rec, err := e.Page.Create(ctx, token, body)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (e erased[T]) Update(ctx context.Context, token, id string, body json.RawMessage) (any, error) {
	rec, err := e.Page.Update(ctx, token, id, body)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (e erased[T]) SetStatus(ctx context.Context, token, id string, active bool) (any, error) {
	rec, err := e.Page.SetStatus(ctx, token, id, active)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Resources are the upstream collections, one per entity.
type Resources struct {
	Users      services.Resource[records.User]
	Babies     services.Resource[records.Baby]
	Doctors    services.Resource[records.Doctor]
	Categories services.Resource[records.Category]
	Advices    services.Resource[records.Advice]
	Articles   services.Resource[records.Article]
	Recipes    services.Resource[records.Recipe]
	Avatars    services.Resource[records.Avatar]
}

// PreferencesSource returns the views an operator saved.
type PreferencesSource interface {
	ListPreferences(ctx context.Context, operatorID string) ([]models.ViewPreferences, error)
}

// Workspace is the set of pages of one operator.
type Workspace struct {
	Advices *Page[records.Advice]

	mu       sync.RWMutex
	operator *models.Operator
	pages    map[string]EntityPage
}

// Operator returns the operator the workspace was last used by.
func (w *Workspace) Operator() *models.Operator {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.operator
}

func (w *Workspace) setOperator(op *models.Operator) {
	w.mu.Lock()
	w.operator = op
	w.mu.Unlock()
}

// Page returns the page of an entity.
func (w *Workspace) Page(entity string) (EntityPage, error) {
	page, ok := w.pages[entity]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unknown entity: %s", entity)}
	}
	return page, nil
}

// Entities lists the workspace's entity names, sorted.
func (w *Workspace) Entities() []string {
	names := make([]string, 0, len(w.pages))
	for name := range w.pages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Factory builds workspaces.
type Factory struct {
	catalog   *catalog.Registry
	resources Resources
	prefs     PreferencesSource
	recorder  services.MutationRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// FactoryConfig carries the Factory's collaborators. Prefs and Recorder
// may be nil.
type FactoryConfig struct {
	Catalog   *catalog.Registry
	Resources Resources
	Prefs     PreferencesSource
	Recorder  services.MutationRecorder
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewFactory checks every definition against the catalog by building a
// throwaway workspace.
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	f := &Factory{
		catalog:   cfg.Catalog,
		resources: cfg.Resources,
		prefs:     cfg.Prefs,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		now:       now,
	}
	if _, err := f.build(&models.Operator{}); err != nil {
		return nil, err
	}
	return f, nil
}

// New builds the workspace of op and applies its saved views. A saved view
// that no longer fits the catalog is skipped.
func (f *Factory) New(ctx context.Context, op *models.Operator) (*Workspace, error) {
	w, err := f.build(op)
	if err != nil {
		return nil, err
	}
	if f.prefs == nil {
		return w, nil
	}

	saved, err := f.prefs.ListPreferences(ctx, op.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load view preferences: %w", err)
	}
	for i := range saved {
		page, err := w.Page(saved[i].Entity)
		if err != nil {
			continue
		}
		if err := page.Configure(&saved[i]); err != nil {
			f.logger.Warn("ignoring saved view", "operator", op.ID, "entity", saved[i].Entity, "error", err)
		}
	}
	return w, nil
}

func (f *Factory) build(op *models.Operator) (*Workspace, error) {
	w := &Workspace{operator: op, pages: make(map[string]EntityPage, 8)}

	if err := addPage(f, w, Users(), f.resources.Users); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Babies(), f.resources.Babies); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Doctors(), f.resources.Doctors); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Categories(), f.resources.Categories); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Articles(), f.resources.Articles); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Recipes(), f.resources.Recipes); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Avatars(), f.resources.Avatars); err != nil {
		return nil, err
	}
	if err := addPage(f, w, Advices(), f.resources.Advices); err != nil {
		return nil, err
	}
	w.Advices = w.pages["advices"].(erased[records.Advice]).Page
	return w, nil
}

func addPage[T listview.Identified](f *Factory, w *Workspace, def *Definition[T], res services.Resource[T]) error {
	entry, err := f.catalog.Get(def.Entity)
	if err != nil {
		return err
	}
	page, err := NewPage(PageConfig[T]{
		Definition: def,
		Entry:      entry,
		Resource:   res,
		Recorder:   f.recorder,
		Operator:   w.operator.ID,
		Logger:     f.logger,
		Now:        f.now,
	})
	if err != nil {
		return err
	}
	w.pages[def.Entity] = erased[T]{page}
	return nil
}

type workspaceEntry struct {
	workspace *Workspace
	lastSeen  time.Time
}

// Workspaces keeps one workspace per operator.
type Workspaces struct {
	factory *Factory
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	byOperator map[string]*workspaceEntry
}

// NewWorkspaces creates an empty registry.
func NewWorkspaces(factory *Factory, logger *slog.Logger) *Workspaces {
	return &Workspaces{
		factory:    factory,
		logger:     logger,
		now:        time.Now,
		byOperator: make(map[string]*workspaceEntry),
	}
}

// Acquire returns the operator's workspace, creating it on first use. The
// operator (and its token) replaces the one the workspace was last used by.
// Saved views are read without holding the registry lock; when two first
// requests race, the workspace inserted first wins.
func (r *Workspaces) Acquire(ctx context.Context, op *models.Operator) (*Workspace, error) {
	if w, ok := r.touch(op); ok {
		return w, nil
	}

	w, err := r.factory.New(ctx, op)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.touchLocked(op); ok {
		return existing, nil
	}
	r.byOperator[op.ID] = &workspaceEntry{workspace: w, lastSeen: r.now()}
	r.logger.Info("workspace created", "operator", op.ID)
	return w, nil
}

func (r *Workspaces) touch(op *models.Operator) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touchLocked(op)
}

// touchLocked requires r.mu.
func (r *Workspaces) touchLocked(op *models.Operator) (*Workspace, bool) {
	e, ok := r.byOperator[op.ID]
	if !ok {
		return nil, false
	}
	e.workspace.setOperator(op)
	e.lastSeen = r.now()
	return e.workspace, true
}

// Lookup returns the workspace of an operator without creating it.
func (r *Workspaces) Lookup(operatorID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byOperator[operatorID]
	if !ok {
		return nil, false
	}
	return e.workspace, true
}

// Evict drops an operator's workspace, and with it the cached operator.
// Called when the upstream reports the session expired.
func (r *Workspaces) Evict(operatorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byOperator[operatorID]; !ok {
		return false
	}
	delete(r.byOperator, operatorID)
	r.logger.Info("workspace evicted", "operator", operatorID)
	return true
}

// Sweep drops workspaces idle for longer than maxIdle and returns how many.
func (r *Workspaces) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for id, e := range r.byOperator {
		if e.lastSeen.Before(cutoff) {
			delete(r.byOperator, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Debug("idle workspaces dropped", "count", dropped)
	}
	return dropped
}

// Run sweeps idle workspaces every interval until ctx is done.
func (r *Workspaces) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}

// Len returns the number of live workspaces.
func (r *Workspaces) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byOperator)
}

// CheckView reports whether saved preferences fit the entity's page: a
// known sort key, a tab the page has and a page size within limits.
func CheckView(cat *catalog.Registry, prefs *models.ViewPreferences) error {
	f := &Factory{catalog: cat, logger: slog.New(slog.DiscardHandler), now: time.Now}
	w, err := f.build(&models.Operator{})
	if err != nil {
		return err
	}
	page, err := w.Page(prefs.Entity)
	if err != nil {
		return err
	}
	return page.Configure(prefs)
}
