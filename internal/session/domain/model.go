package domain

import "errors"

var (
	ErrNoActiveProject = errors.New("no active project")
	ErrInvalidTab      = errors.New("invalid tab")
	ErrUnknownBoard    = errors.New("unknown board")
)

// Tab is the output view currently focused in the IDE.
type Tab string

const (
	TabSource  Tab = "source"
	TabConsole Tab = "console"
	TabSerial  Tab = "serial"
)

func (t Tab) Valid() bool {
	switch t {
	case TabSource, TabConsole, TabSerial:
		return true
	}
	return false
}

// SaveResult is the definite outcome of a save request.
type SaveResult string

const (
	// SaveCompleted means the store holds the snapshot read at call time.
	SaveCompleted SaveResult = "saved"
	// SaveSkipped means the editing surface had no snapshot to persist
	// (unmounted or still settling). Not an error.
	SaveSkipped SaveResult = "skipped"
)

// ProjectInfo is the active-project metadata exposed to views.
type ProjectInfo struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Board    string `json:"board"`
}

// Snapshot is a read copy of the session state for view re-render. Only the
// orchestrator mutates the underlying state.
type Snapshot struct {
	Project   *ProjectInfo `json:"project"`
	ActiveTab Tab          `json:"active_tab"`
	Board     string       `json:"board"`
	Dirty     bool         `json:"dirty"`
}
