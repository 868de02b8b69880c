package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/motorline/vehicle-finder/pkg/types"
)

const savedSearchPrefix = "saved-search:"

// SavedSearch is a named, persisted criteria a user can re-open later.
type SavedSearch struct {
	Id       string          `json:"id"`
	Name     string          `json:"name"`
	Criteria types.Criteria  `json:"criteria"`
	Sort     types.SortOrder `json:"sort"`
	Created  time.Time       `json:"created"`
}

// SavedSearchStore keeps saved searches in Redis, one key per search plus a
// per-user set for listing.
type SavedSearchStore struct {
	client *redis.Client
}

func NewSavedSearchStore(addr, password string, db int) *SavedSearchStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &SavedSearchStore{client: rdb}
}

func (s *SavedSearchStore) Close() error {
	return s.client.Close()
}

func (s *SavedSearchStore) Save(ctx context.Context, userId, name string, criteria types.Criteria, sort types.SortOrder) (*SavedSearch, error) {
	search := &SavedSearch{
		Id:       uuid.NewString(),
		Name:     name,
		Criteria: criteria,
		Sort:     sort,
		Created:  time.Now(),
	}
	data, err := json.Marshal(search)
	if err != nil {
		return nil, err
	}
	key := savedSearchPrefix + search.Id
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, userKey(userId), search.Id).Err(); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *SavedSearchStore) Get(ctx context.Context, id string) (*SavedSearch, error) {
	data, err := s.client.Get(ctx, savedSearchPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("saved search %s not found: %w", id, err)
	}
	search := &SavedSearch{}
	if err := json.Unmarshal([]byte(data), search); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *SavedSearchStore) List(ctx context.Context, userId string) ([]*SavedSearch, error) {
	ids, err := s.client.SMembers(ctx, userKey(userId)).Result()
	if err != nil {
		return nil, err
	}
	searches := make([]*SavedSearch, 0, len(ids))
	for _, id := range ids {
		search, err := s.Get(ctx, id)
		if err != nil {
			// Orphaned set member, skip it.
			continue
		}
		searches = append(searches, search)
	}
	return searches, nil
}

func (s *SavedSearchStore) Delete(ctx context.Context, userId, id string) error {
	if err := s.client.SRem(ctx, userKey(userId), id).Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, savedSearchPrefix+id).Err()
}

func userKey(userId string) string {
	return "user-searches:" + userId
}
