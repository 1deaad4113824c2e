package console

import (
	"context"
	"log"
)

// Sink is the append-only message channel the orchestrator notifies through.
// Append never fails upward: a console notice must not be able to break the
// operation that produced it, so storage errors are only logged.
type Sink struct {
	repo *Repo
}

func NewSink(repo *Repo) *Sink {
	return &Sink{repo: repo}
}

func (s *Sink) Append(ctx context.Context, level, text string) {
	if _, err := s.repo.Append(ctx, level, text); err != nil {
		log.Printf("[warn] operation=console_append level=%s error=%v", level, err)
	}
}

func (s *Sink) Info(ctx context.Context, text string) {
	s.Append(ctx, LevelInfo, text)
}

func (s *Sink) Error(ctx context.Context, text string) {
	s.Append(ctx, LevelError, text)
}
