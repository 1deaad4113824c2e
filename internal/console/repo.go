package console

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	logKey       = "bpad:console:log"    // RPUSH list holding the full message sequence
	eventChannel = "bpad:console:events" // Pub/Sub channel for live console streaming
)

// Repo handles Redis operations for console messages. RPUSH keeps the list in
// strict insertion order, which is the ordering guarantee the console view
// relies on.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Append(ctx context.Context, level, text string) (*Message, error) {
	msg := &Message{
		ID:    uuid.New().String(),
		Level: level,
		Text:  text,
		At:    time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal console message: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, logKey, data)
	pipe.Publish(ctx, eventChannel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to append console message: %w", err)
	}
	return msg, nil
}

// Tail returns the last limit messages in insertion order. limit <= 0 returns
// the whole sequence.
func (r *Repo) Tail(ctx context.Context, limit int) ([]Message, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raw, err := r.client.LRange(ctx, logKey, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read console log: %w", err)
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal console message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

// Subscribe returns a pub/sub subscription for live message delivery. The
// caller owns closing it.
func (r *Repo) Subscribe(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, eventChannel)
}
