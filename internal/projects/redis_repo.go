package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	projectKeyPrefix = "bpad:project:" // Project record: bpad:project:{public_id}
	projectIndexKey  = "bpad:projects" // Set of all project public ids
)

// RedisStore keeps project records as JSON values. It backs standalone mode
// (no Postgres configured) and the test suite.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(publicID string) string {
	return projectKeyPrefix + publicID
}

func (s *RedisStore) put(ctx context.Context, p *Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(p.PublicID), data, 0)
	pipe.SAdd(ctx, projectIndexKey, p.PublicID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

func (s *RedisStore) Create(ctx context.Context, in CreateInput) (*Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name required")
	}

	publicID, err := NewPublicID("bpad")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Project{
		PublicID:          publicID,
		Name:              in.Name,
		WorkspaceDocument: in.WorkspaceDocument,
		GeneratedSource:   in.GeneratedSource,
		Board:             in.Board,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RedisStore) Fetch(ctx context.Context, publicID string) (*Project, error) {
	data, err := s.client.Get(ctx, s.key(publicID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var p Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Update(ctx context.Context, publicID string, fields UpdateFields) (*Project, error) {
	p, err := s.Fetch(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.WorkspaceDocument != nil {
		p.WorkspaceDocument = *fields.WorkspaceDocument
	}
	if fields.GeneratedSource != nil {
		p.GeneratedSource = *fields.GeneratedSource
	}
	if fields.Board != nil {
		p.Board = *fields.Board
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Project, error) {
	ids, err := s.client.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}

	out := make([]Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.Fetch(ctx, id)
		if err == ErrNotFound {
			// index entry without a record, skip
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
