package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/xesmeta/repository"
)

// Repository is a repository.Repository backed by Redis hashes.
type Repository struct {
	client *Client
	prefix string
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.StepLister = (*Repository)(nil)
)

// NewRepository returns a store writing under prefix. An empty prefix
// uses DefaultKeyPrefix.
func NewRepository(client *Client, prefix string) *Repository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repository{client: client, prefix: prefix}
}

func (r *Repository) stepKey(stepID repository.ObjectID) string {
	return fmt.Sprintf("%s:step:%s", r.prefix, stepID)
}

func (r *Repository) pipelineKey(pipelineID repository.ObjectID) string {
	return fmt.Sprintf("%s:pipeline:%s:steps", r.prefix, pipelineID)
}

// SaveStepAttribute implements repository.Repository.
func (r *Repository) SaveStepAttribute(ctx context.Context, pipelineID, stepID repository.ObjectID, name, value string) error {
	if !pipelineID.Valid() || !stepID.Valid() {
		return repository.ErrInvalidID
	}
	_, err := r.client.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.stepKey(stepID), name, value)
		pipe.SAdd(ctx, r.pipelineKey(pipelineID), stepID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s/%s: %w", stepID, name, err)
	}
	return nil
}

// GetStepAttributeString implements repository.Repository.
func (r *Repository) GetStepAttributeString(ctx context.Context, stepID repository.ObjectID, name string) (string, bool, error) {
	if !stepID.Valid() {
		return "", false, repository.ErrInvalidID
	}
	v, err := r.client.rdb.HGet(ctx, r.stepKey(stepID), name).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s/%s: %w", stepID, name, err)
	}
	return v, true, nil
}

// StepsOf implements repository.StepLister. Steps are returned sorted.
func (r *Repository) StepsOf(ctx context.Context, pipelineID repository.ObjectID) ([]repository.ObjectID, error) {
	members, err := r.client.rdb.SMembers(ctx, r.pipelineKey(pipelineID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", pipelineID, err)
	}
	out := make([]repository.ObjectID, 0, len(members))
	for _, m := range members {
		out = append(out, repository.ObjectID(m))
	}
	slices.Sort(out)
	return out, nil
}

// Attributes returns every attribute stored for a step.
func (r *Repository) Attributes(ctx context.Context, stepID repository.ObjectID) (map[string]string, error) {
	attrs, err := r.client.rdb.HGetAll(ctx, r.stepKey(stepID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read %s: %w", stepID, err)
	}
	return attrs, nil
}
