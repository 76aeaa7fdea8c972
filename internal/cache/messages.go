package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arunasjusas/invoicing/internal/entity"
)

const (
	messagesKey = "reminders:messages"
	messagesTTL = 24 * time.Hour
)

// Messages caches the synthesized reminder set. The cache is invalidated on
// every invoice mutation; a cache miss means the caller regenerates from the
// current snapshot.
type Messages struct {
	client *redis.Client
}

func NewMessages(client *redis.Client) *Messages {
	return &Messages{
		client: client,
	}
}

// Get returns the cached messages and whether the cache was populated.
func (c *Messages) Get(ctx context.Context) ([]entity.Message, bool, error) {
	raw, err := c.client.Get(ctx, messagesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("get messages: %w", err)
	}

	var messages []entity.Message

	err = json.Unmarshal(raw, &messages)
	if err != nil {
		return nil, false, fmt.Errorf("unmarshal messages: %w", err)
	}

	return messages, true, nil
}

func (c *Messages) Set(ctx context.Context, messages []entity.Message) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	err = c.client.Set(ctx, messagesKey, raw, messagesTTL).Err()
	if err != nil {
		return fmt.Errorf("set messages: %w", err)
	}

	return nil
}

func (c *Messages) Invalidate(ctx context.Context) error {
	err := c.client.Del(ctx, messagesKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("del messages: %w", err)
	}

	return nil
}
