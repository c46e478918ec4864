package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"svw.info/gridsolver/internal/domain"
)

const (
	puzzleKeyPrefix = "puzzle:"
	puzzleIndexKey  = "puzzles:index"
)

// Redis stores puzzles as JSON values under puzzle:<id>, with a set of
// known IDs for listing.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the given redis URL and verifies the connection.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

func (s *Redis) Close() error { return s.client.Close() }

func (s *Redis) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, puzzleKeyPrefix+p.ID, data, 0)
	pipe.SAdd(ctx, puzzleIndexKey, p.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Redis) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	data, err := s.client.Get(ctx, puzzleKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Redis) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	ids, err := s.client.SMembers(ctx, puzzleIndexKey).Result()
	if err != nil {
		return nil, err
	}
	var out []domain.PuzzleMeta
	for _, id := range ids {
		p, err := s.Load(ctx, id)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, domain.PuzzleMeta{
			ID:         p.ID,
			Name:       p.Name,
			Variant:    p.Variant,
			Difficulty: p.Difficulty,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out, nil
}
