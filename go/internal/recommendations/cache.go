package recommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultCacheTTL = 60 * time.Second

// Cache keeps recent responses in redis so refreshing the recommendations
// view between picks does not re-run the provider. Redis trouble is logged
// and treated as a miss, it never fails a request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, draftID uuid.UUID, currentPick int) (*Response, bool) {
	data, err := c.client.Get(ctx, cacheKey(draftID, currentPick)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("recommendation cache read failed")
		}
		return nil, false
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("recommendation cache entry corrupt")
		return nil, false
	}
	return &resp, true
}

func (c *Cache) Set(ctx context.Context, draftID uuid.UUID, currentPick int, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("failed to marshal recommendation response")
		return
	}
	if err := c.client.Set(ctx, cacheKey(draftID, currentPick), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("recommendation cache write failed")
	}
}

func cacheKey(draftID uuid.UUID, currentPick int) string {
	return fmt.Sprintf("recs:%s:%d", draftID, currentPick)
}
