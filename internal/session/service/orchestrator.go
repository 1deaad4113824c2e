package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blockpad-io/blockpad-backend/internal/boards"
	"github.com/blockpad-io/blockpad-backend/internal/console"
	"github.com/blockpad-io/blockpad-backend/internal/projects"
	"github.com/blockpad-io/blockpad-backend/internal/session/domain"
	"github.com/blockpad-io/blockpad-backend/internal/workspace"
)

// Orchestrator owns the session state: the single active project (or none),
// the focused output tab and the selected board. Every project-lifecycle
// operation funnels through it; other components only receive read snapshots.
//
// Handlers and the auto-save scheduler call in concurrently, so state is
// guarded by a mutex. Store I/O runs outside the lock with the project id and
// workspace snapshot captured under it, which is what keeps an in-flight save
// for a previous project from touching the in-memory state of the next one.
type Orchestrator struct {
	store   projects.Store
	bridge  *workspace.Bridge
	console *console.Sink
	catalog *boards.Catalog

	mu     sync.Mutex
	active *projects.Project
	tab    domain.Tab
	board  string
	dirty  bool

	// onProjectChange re-arms the auto-save timer when the active project
	// identity changes. Set once at wiring time.
	onProjectChange func()
}

func NewOrchestrator(store projects.Store, bridge *workspace.Bridge, sink *console.Sink, catalog *boards.Catalog, defaultBoard string) *Orchestrator {
	return &Orchestrator{
		store:   store,
		bridge:  bridge,
		console: sink,
		catalog: catalog,
		tab:     domain.TabSource,
		board:   defaultBoard,
	}
}

func (o *Orchestrator) SetProjectChangeHook(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onProjectChange = fn
}

func (o *Orchestrator) projectChanged() {
	if o.onProjectChange != nil {
		o.onProjectChange()
	}
}

// CreateNewProject builds a fresh project from the given workspace state,
// makes it the active project and persists it immediately so it is
// recoverable before the first explicit save. The project stays active in
// memory even if the initial write fails; the failure is reported to the
// console.
func (o *Orchestrator) CreateNewProject(ctx context.Context, name, document, source string) (*projects.Project, error) {
	logger := NewLogger(ctx)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name required")
	}

	o.mu.Lock()
	board := o.board
	o.mu.Unlock()

	p, err := o.store.Create(ctx, projects.CreateInput{
		Name:              strings.TrimSpace(name),
		WorkspaceDocument: document,
		GeneratedSource:   source,
		Board:             board,
	})
	if err != nil {
		logger.LogError("create_project", err)
		o.console.Error(ctx, fmt.Sprintf("Could not save new project %q: %v", name, err))

		// keep the project usable in memory regardless
		publicID, idErr := projects.NewPublicID("bpad")
		if idErr != nil {
			return nil, idErr
		}
		now := time.Now().UTC()
		p = &projects.Project{
			PublicID:          publicID,
			Name:              strings.TrimSpace(name),
			WorkspaceDocument: document,
			GeneratedSource:   source,
			Board:             board,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	o.mu.Lock()
	o.active = p
	o.dirty = false
	o.mu.Unlock()

	o.bridge.Seed(p.WorkspaceDocument)
	o.projectChanged()

	logger.LogInfof("create_project", "public_id=%s name=%q", p.PublicID, p.Name)
	return p, nil
}

// OpenProject loads the project by id and replaces the active project
// wholesale. A missing id propagates as projects.ErrNotFound and leaves the
// previous session state untouched. The workspace bridge is seeded with the
// loaded document; re-mounting against it is the surface's job.
func (o *Orchestrator) OpenProject(ctx context.Context, publicID string) (*projects.Project, error) {
	logger := NewLogger(ctx)

	p, err := o.store.Fetch(ctx, publicID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			o.console.Error(ctx, fmt.Sprintf("Project %s not found", publicID))
		} else {
			logger.LogError("open_project", err)
			o.console.Error(ctx, fmt.Sprintf("Could not open project %s: %v", publicID, err))
		}
		return nil, err
	}

	o.mu.Lock()
	o.active = p
	o.dirty = false
	if p.Board != "" && o.catalog.Has(p.Board) {
		o.board = p.Board
	}
	o.mu.Unlock()

	o.bridge.Seed(p.WorkspaceDocument)
	o.projectChanged()

	o.console.Info(ctx, fmt.Sprintf("Loaded project %q", p.Name))
	logger.LogInfof("open_project", "public_id=%s name=%q", p.PublicID, p.Name)
	return p, nil
}

// ImportProject creates a project from externally supplied workspace content
// (an uploaded file) rather than the live surface, selecting the given board.
func (o *Orchestrator) ImportProject(ctx context.Context, name, board, document, source string) (*projects.Project, error) {
	if board != "" && !o.catalog.Has(board) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBoard, board)
	}

	if board != "" {
		o.mu.Lock()
		o.board = board
		o.mu.Unlock()
	}

	p, err := o.CreateNewProject(ctx, name, document, source)
	if err != nil {
		return nil, err
	}

	o.console.Info(ctx, fmt.Sprintf("Imported project %q", p.Name))
	return p, nil
}

// SaveProject writes the current workspace snapshot to the store under the
// active project's id. With no snapshot available (surface unmounted or
// settling) the save is skipped silently; that is expected right after
// navigation, not an error. A failed write is reported to the console and
// leaves the in-memory project untouched.
func (o *Orchestrator) SaveProject(ctx context.Context) (domain.SaveResult, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	o.mu.Lock()
	if o.active == nil {
		o.mu.Unlock()
		return "", domain.ErrNoActiveProject
	}
	publicID := o.active.PublicID
	board := o.board
	o.mu.Unlock()

	snap, ok := o.bridge.Read()
	if !ok {
		recordSaveSkip()
		return domain.SaveSkipped, nil
	}

	updated, err := o.store.Update(ctx, publicID, projects.UpdateFields{
		WorkspaceDocument: &snap.Document,
		GeneratedSource:   &snap.GeneratedSource,
		Board:             &board,
	})
	recordSave(time.Since(start), err)
	if err != nil {
		logger.LogError("save_project", err)
		o.console.Error(ctx, fmt.Sprintf("Could not save project %s: %v", publicID, err))
		return "", err
	}

	o.mu.Lock()
	// a save raced with openProject: the store write was keyed to the old
	// id, so the record it touched is the old project's; just don't fold
	// the result into the new project's in-memory state
	if o.active != nil && o.active.PublicID == publicID {
		o.active = updated
		o.dirty = false
	}
	o.mu.Unlock()

	return domain.SaveCompleted, nil
}

// AutoSave is the scheduler entry point: a tick with no active project does
// nothing, and save failures are already reported through the console, so
// they are only logged here.
func (o *Orchestrator) AutoSave(ctx context.Context) {
	recordAutosaveTick()

	if !o.HasActiveProject() {
		return
	}

	if _, err := o.SaveProject(ctx); err != nil && !errors.Is(err, domain.ErrNoActiveProject) {
		NewLogger(ctx).LogErrorf("autosave", "save failed: %v", err)
	}
}

func (o *Orchestrator) HasActiveProject() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active != nil
}

// SetActiveTab is a pure state transition among the fixed tab enumeration.
func (o *Orchestrator) SetActiveTab(tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTab, tab)
	}

	o.mu.Lock()
	o.tab = tab
	o.mu.Unlock()
	return nil
}

// SelectBoard changes the board for subsequent saves and serial connections.
// Already-generated source is not regenerated; that trigger lives with the
// code-generation collaborator.
func (o *Orchestrator) SelectBoard(board string) error {
	if !o.catalog.Has(board) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownBoard, board)
	}

	o.mu.Lock()
	o.board = board
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) SelectedBoard() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.board
}

// MarkDirty records that the workspace changed since the last save. Auto-save
// does not consult it; it exists for view state only.
func (o *Orchestrator) MarkDirty() {
	o.mu.Lock()
	if o.active != nil {
		o.dirty = true
	}
	o.mu.Unlock()
}

// AddConsoleMessage appends to the console sequence. It never fails.
func (o *Orchestrator) AddConsoleMessage(ctx context.Context, level, text string) {
	o.console.Append(ctx, level, text)
}

// Snapshot returns a read copy of the session state.
func (o *Orchestrator) Snapshot() domain.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := domain.Snapshot{
		ActiveTab: o.tab,
		Board:     o.board,
		Dirty:     o.dirty,
	}
	if o.active != nil {
		snap.Project = &domain.ProjectInfo{
			PublicID: o.active.PublicID,
			Name:     o.active.Name,
			Board:    o.active.Board,
		}
	}
	return snap
}

// ActiveProject returns a copy of the active project, or nil.
func (o *Orchestrator) ActiveProject() *projects.Project {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active == nil {
		return nil
	}
	p := *o.active
	return &p
}
