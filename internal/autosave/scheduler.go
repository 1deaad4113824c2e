package autosave

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Saver is the session side of the scheduler. AutoSave must tolerate being
// invoked with no active project (it performs no store operation then) and
// must report its own failures; the scheduler fires and forgets.
type Saver interface {
	AutoSave(ctx context.Context)
}

// Scheduler drives the periodic unconditional save of the active project.
// Overlapping ticks are acceptable: store writes are keyed by project id, so
// a slow save racing a later one resolves to last-write-wins.
type Scheduler struct {
	interval time.Duration
	saver    Saver

	mu    sync.Mutex
	c     *cron.Cron
	entry cron.EntryID
}

func NewScheduler(interval time.Duration, saver Saver) *Scheduler {
	return &Scheduler{interval: interval, saver: saver}
}

func (s *Scheduler) spec() string {
	return fmt.Sprintf("@every %ds", int(s.interval.Seconds()))
}

// Start arms the timer.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c != nil {
		return nil
	}

	c := cron.New(cron.WithSeconds())
	entry, err := c.AddFunc(s.spec(), s.tick)
	if err != nil {
		return fmt.Errorf("failed to create autosave job: %w", err)
	}
	s.c = c
	s.entry = entry
	c.Start()

	log.Printf("[info] operation=autosave scheduler started interval=%s", s.interval)
	return nil
}

// Rearm resets the timer phase. Called when the active project identity
// changes so a freshly opened project gets a full interval before its first
// auto-save.
func (s *Scheduler) Rearm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c == nil {
		return
	}

	s.c.Remove(s.entry)
	entry, err := s.c.AddFunc(s.spec(), s.tick)
	if err != nil {
		// the schedule expression already parsed once at Start
		log.Printf("[error] operation=autosave rearm failed: %v", err)
		return
	}
	s.entry = entry
}

// Stop disarms the timer and waits for running ticks to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *Scheduler) tick() {
	s.saver.AutoSave(context.Background())
}
