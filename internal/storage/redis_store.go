package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"zaur-newsdesk/internal/model"
)

const (
	itemsKey      = "newsdesk:items"      // HASH id -> NewsItem JSON
	commentsKey   = "newsdesk:comments"   // HASH id -> Comment JSON
	discoveredKey = "newsdesk:discovered" // ZSET score=unix seconds, member=id
)

// RedisStore keeps items in a hash and discoveries in a sorted set, so a
// repeat discovery is a plain ZADD that refreshes the score.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func (s *RedisStore) Upsert(ctx context.Context, item model.NewsItem) (bool, error) {
	raw, err := s.rdb.HGet(ctx, itemsKey, item.ID).Bytes()
	if err != nil && err != redis.Nil {
		return false, err
	}
	if err == nil {
		var existing model.NewsItem
		if uerr := json.Unmarshal(raw, &existing); uerr == nil {
			if !item.PublishDate.After(existing.PublishDate) {
				return false, nil
			}
		}
	}
	b, err := json.Marshal(item)
	if err != nil {
		return false, err
	}
	if err := s.rdb.HSet(ctx, itemsKey, item.ID, b).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Query(ctx context.Context, category string) ([]model.NewsItem, error) {
	raw, err := s.rdb.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsItem, 0, len(raw))
	for id, v := range raw {
		var it model.NewsItem
		if err := json.Unmarshal([]byte(v), &it); err != nil {
			return nil, fmt.Errorf("decode item %s: %w", id, err)
		}
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishDate.Equal(out[j].PublishDate) {
			return out[i].PublishDate.After(out[j].PublishDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *RedisStore) Prune(ctx context.Context, maxItems int) (int, error) {
	if maxItems <= 0 {
		return 0, nil
	}
	all, err := s.Query(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(all) <= maxItems {
		return 0, nil
	}
	victims := make([]string, 0, len(all)-maxItems)
	for _, it := range all[maxItems:] {
		victims = append(victims, it.ID)
	}
	if err := s.rdb.HDel(ctx, itemsKey, victims...).Err(); err != nil {
		return 0, err
	}
	return len(victims), nil
}

func (s *RedisStore) SaveComment(ctx context.Context, itemID, text string) error {
	b, err := json.Marshal(model.Comment{ItemID: itemID, Comment: text, Timestamp: s.now()})
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, commentsKey, itemID, b).Err()
}

func (s *RedisStore) GetComment(ctx context.Context, itemID string) (string, error) {
	raw, err := s.rdb.HGet(ctx, commentsKey, itemID).Bytes()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var c model.Comment
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", err
	}
	return c.Comment, nil
}

func (s *RedisStore) AddDiscovery(ctx context.Context, itemID string) error {
	z := redis.Z{Score: float64(s.now().Unix()), Member: itemID}
	return s.rdb.ZAdd(ctx, discoveredKey, z).Err()
}

func (s *RedisStore) ListDiscoveries(ctx context.Context) ([]model.DiscoveredItem, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, discoveredKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.DiscoveredItem, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, model.DiscoveredItem{
			ItemID:    id,
			Timestamp: time.Unix(int64(z.Score), 0),
		})
	}
	return out, nil
}

func (s *RedisStore) PruneDiscoveries(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-maxAge).Unix()
	n, err := s.rdb.ZRemRangeByScore(ctx, discoveredKey, "-inf", strconv.FormatInt(cutoff, 10)).Result()
	return int(n), err
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
