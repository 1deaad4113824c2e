package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists projects in the projects table.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const projectColumns = "public_id, name, workspace_document, generated_source, board, created_at, updated_at"

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.PublicID, &p.Name, &p.WorkspaceDocument, &p.GeneratedSource, &p.Board, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (*Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("bpad")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, name, workspace_document, generated_source, board)
values ($1, $2, $3, $4, $5)
returning ` + projectColumns + `;
`
		p, err := scanProject(s.db.QueryRow(ctx, q, publicID, in.Name, in.WorkspaceDocument, in.GeneratedSource, in.Board))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		if isUniqueViolation(err) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (s *PostgresStore) Fetch(ctx context.Context, publicID string) (*Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where public_id = $1;
`
	return scanProject(s.db.QueryRow(ctx, q, publicID))
}

func (s *PostgresStore) Update(ctx context.Context, publicID string, fields UpdateFields) (*Project, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	args = append(args, publicID)

	add := func(col string, v *string) {
		if v != nil {
			args = append(args, *v)
			set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	add("name", fields.Name)
	add("workspace_document", fields.WorkspaceDocument)
	add("generated_source", fields.GeneratedSource)
	add("board", fields.Board)

	if len(set) == 0 {
		return s.Fetch(ctx, publicID)
	}

	q := `
update projects
set ` + strings.Join(set, ", ") + `, updated_at = now()
where public_id = $1
returning ` + projectColumns + `;
`
	return scanProject(s.db.QueryRow(ctx, q, args...))
}

func (s *PostgresStore) List(ctx context.Context) ([]Project, error) {
	const q = `
select ` + projectColumns + `
from projects
order by updated_at desc;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.PublicID, &p.Name, &p.WorkspaceDocument, &p.GeneratedSource, &p.Board, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
