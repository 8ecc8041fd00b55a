package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sparklewash/models"
	"sparklewash/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionStore keeps in-progress booking drafts in Redis with a TTL.
// One draft per session; drafts are never shared across sessions.
type SessionStore struct {
	Cache *redis.Client
	TTL   time.Duration
}

func NewSessionStore(cache *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = utils.SessionCacheTTL
	}
	return &SessionStore{Cache: cache, TTL: ttl}
}

func sessionKey(sessionID string) string {
	return utils.SessionCachePrefix + sessionID
}

// Create starts a fresh draft for the given user and shop.
func (s *SessionStore) Create(ctx context.Context, userID, shopID, vehicle string) (*models.BookingDraft, error) {
	draft := &models.BookingDraft{
		SessionID:       uuid.New().String(),
		UserID:          userID,
		ShopID:          shopID,
		VehicleCategory: vehicle,
		FulfillmentMode: models.FulfillAtLocation,
		State:           StateIdle,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get retrieves a draft by session ID.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("booking session not found or expired: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &draft, nil
}

// Save writes the draft back, refreshing the TTL.
func (s *SessionStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(draft.SessionID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// Delete removes the draft, e.g. after the booking is confirmed.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Cache.Del(ctx, sessionKey(sessionID)).Err()
}
