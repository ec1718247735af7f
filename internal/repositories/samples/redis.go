package samples

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/edufocus/liveclass/internal/models"
)

const (
	// Key prefixes for Redis
	sampleKeyPrefix = "session:%s:focus:%s" // session ID, user ID
	rosterKeyPrefix = "session:%s:roster"   // session ID
)

// ErrRosterNotFound is returned when no snapshot exists for a session
var ErrRosterNotFound = errors.New("roster snapshot not found")

// Config holds configuration for the Redis samples repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed samples repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// RecordSample appends one focus sample to a user's session history
func (r *redisRepository) RecordSample(ctx context.Context, input *RecordSampleInput) error {
	if input == nil || input.Sample == nil {
		return errors.New("input and sample cannot be nil")
	}

	if input.SessionID == "" || input.UserID == "" {
		return errors.New("session ID and user ID cannot be empty")
	}

	sampleJSON, err := json.Marshal(input.Sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	key := fmt.Sprintf(sampleKeyPrefix, input.SessionID, input.UserID)
	if err := r.client.RPush(ctx, key, sampleJSON).Err(); err != nil {
		return fmt.Errorf("failed to record sample: %w", err)
	}

	return nil
}

// GetSamples retrieves a user's recorded samples for a session, oldest first
func (r *redisRepository) GetSamples(ctx context.Context, input *GetSamplesInput) (*GetSamplesOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, errors.New("input, session ID and user ID cannot be empty")
	}

	key := fmt.Sprintf(sampleKeyPrefix, input.SessionID, input.UserID)
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get samples: %w", err)
	}

	out := &GetSamplesOutput{
		Samples: make([]*models.FocusSample, 0, len(raw)),
	}

	for _, item := range raw {
		var sample models.FocusSample
		if err := json.Unmarshal([]byte(item), &sample); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sample: %w", err)
		}
		out.Samples = append(out.Samples, &sample)
	}

	return out, nil
}

// SaveRosterSnapshot stores the latest roster for a session, replacing any
// previous snapshot
func (r *redisRepository) SaveRosterSnapshot(ctx context.Context, input *SaveRosterSnapshotInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	rosterJSON, err := json.Marshal(input.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	key := fmt.Sprintf(rosterKeyPrefix, input.SessionID)
	if err := r.client.Set(ctx, key, rosterJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save roster snapshot: %w", err)
	}

	return nil
}

// GetRosterSnapshot retrieves the latest stored roster for a session
func (r *redisRepository) GetRosterSnapshot(ctx context.Context, input *GetRosterSnapshotInput) (*GetRosterSnapshotOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	key := fmt.Sprintf(rosterKeyPrefix, input.SessionID)
	rosterJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to get roster snapshot: %w", err)
	}

	var participants []models.Participant
	if err := json.Unmarshal([]byte(rosterJSON), &participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	return &GetRosterSnapshotOutput{
		Participants: participants,
	}, nil
}
