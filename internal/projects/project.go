package projects

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("project not found")

// Project is the persisted unit of work: the serialized block workspace, the
// source generated from it, and the metadata the IDE needs to reopen it.
// WorkspaceDocument and GeneratedSource are opaque text to this layer.
type Project struct {
	PublicID          string    `json:"public_id"`
	Name              string    `json:"name"`
	WorkspaceDocument string    `json:"workspace_document"`
	GeneratedSource   string    `json:"generated_source"`
	Board             string    `json:"board"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateInput struct {
	Name              string
	WorkspaceDocument string
	GeneratedSource   string
	Board             string
}

// UpdateFields is a partial update; nil fields are left untouched.
type UpdateFields struct {
	Name              *string
	WorkspaceDocument *string
	GeneratedSource   *string
	Board             *string
}

// Store is durable project storage. Updates are keyed by public id and are
// whole-field overwrites, so concurrent writers settle on last-write-wins.
type Store interface {
	Create(ctx context.Context, in CreateInput) (*Project, error)
	Fetch(ctx context.Context, publicID string) (*Project, error)
	Update(ctx context.Context, publicID string, fields UpdateFields) (*Project, error)
	List(ctx context.Context) ([]Project, error)
}
