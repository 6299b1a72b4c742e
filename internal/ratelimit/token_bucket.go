package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// KEYS[1] bucket hash; ARGV rate (tokens/s), burst, ttl (ms).
// Replies {allowed, tokens left as text, retry after in ms}.
const tokenBucketScript = `
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])

local t = redis.call("TIME")
local now = tonumber(t[1]) + tonumber(t[2]) / 1000000

local state = redis.call("HMGET", KEYS[1], "tokens", "at")
local tokens = tonumber(state[1]) or burst
local at = tonumber(state[2]) or now

local elapsed = math.max(0, now - at)
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
local retry_ms = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  retry_ms = math.ceil((1 - tokens) / rate * 1000)
end

redis.call("HSET", KEYS[1], "tokens", tostring(tokens), "at", tostring(now))
redis.call("PEXPIRE", KEYS[1], ARGV[3])

return {allowed, tostring(tokens), retry_ms}
`

var errBadReply = errors.New("ratelimit: unexpected script reply")

// TokenBucket keeps one bucket per key in Redis so every replica shares the budget.
type TokenBucket struct {
	client redis.Scripter
	script *redis.Script
}

// Result describes one admission decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

func NewTokenBucket(client redis.Scripter) *TokenBucket {
	if client == nil {
		return nil
	}
	return &TokenBucket{
		client: client,
		script: redis.NewScript(tokenBucketScript),
	}
}

// Allow takes one token from the bucket at key, refilling at rate tokens per
// second up to burst.
func (t *TokenBucket) Allow(ctx context.Context, key string, rate float64, burst int) (Result, error) {
	switch {
	case t == nil:
		return Result{}, errors.New("ratelimit: bucket not configured")
	case key == "":
		return Result{}, errors.New("ratelimit: empty key")
	case rate <= 0 || burst <= 0:
		return Result{}, fmt.Errorf("ratelimit: rate %v and burst %d must be positive", rate, burst)
	}

	reply, err := t.script.Run(ctx, t.client, []string{key}, rate, burst, bucketTTL(rate, burst).Milliseconds()).Slice()
	if err != nil {
		return Result{}, err
	}
	res, err := parseReply(reply)
	if err != nil {
		return Result{}, err
	}
	res.Limit = burst
	return res, nil
}

func parseReply(reply []any) (Result, error) {
	if len(reply) != 3 {
		return Result{}, errBadReply
	}
	allowed, ok := reply[0].(int64)
	if !ok {
		return Result{}, errBadReply
	}
	text, ok := reply[1].(string)
	if !ok {
		return Result{}, errBadReply
	}
	tokens, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Result{}, errBadReply
	}
	retryMs, ok := reply[2].(int64)
	if !ok {
		return Result{}, errBadReply
	}
	return Result{
		Allowed:    allowed == 1,
		Remaining:  int(math.Floor(tokens)),
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}

// bucketTTL keeps an idle bucket for twice the time it takes to refill.
func bucketTTL(rate float64, burst int) time.Duration {
	seconds := math.Ceil(2 * float64(burst) / rate)
	return time.Duration(math.Max(seconds, 1)) * time.Second
}
