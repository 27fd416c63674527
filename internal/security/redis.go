package security

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEngine computes verdicts locally: user-agent heuristics for bots,
// pattern matching for attack shielding, and a sliding window over a Redis
// ZSET for rate limiting.
type RedisEngine struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisEngine wraps the given Redis client. prefix namespaces the rate
// window keys so instances sharing one Redis do not collide.
func NewRedisEngine(client redis.Cmdable, prefix string) *RedisEngine {
	if prefix == "" {
		prefix = "userhub"
	}
	return &RedisEngine{client: client, prefix: prefix, now: time.Now}
}

func (e *RedisEngine) Evaluate(ctx context.Context, fp Fingerprint, policy Policy) (Verdict, error) {
	if isBot(fp.UserAgent) {
		return Verdict{Denied: true, Reason: ReasonBot}, nil
	}
	if matchesShield(fp.Path, fp.RawQuery) {
		return Verdict{Denied: true, Reason: ReasonShield}, nil
	}

	count, err := countWindow(ctx, e.client, e.windowKey(fp, policy), e.now(), policy)
	if err != nil {
		return Verdict{}, fmt.Errorf("sliding window: %w", err)
	}
	if count > int64(policy.Max) {
		return Verdict{Denied: true, Reason: ReasonRateLimit}, nil
	}
	return Verdict{}, nil
}

func (e *RedisEngine) windowKey(fp Fingerprint, policy Policy) string {
	return fmt.Sprintf("%s:%s:%s", e.prefix, policy.Name, fp.IP)
}

// countWindow is overridable in tests.
var countWindow = slideWindow

// slideWindow records the request and returns how many requests the key has
// seen inside the window, this one included.
func slideWindow(ctx context.Context, client redis.Cmdable, key string, now time.Time, policy Policy) (int64, error) {
	cutoff := now.Add(-policy.Interval).UnixNano()

	pipe := client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, policy.Interval)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return card.Val(), nil
}

// allowedAgents are well-behaved crawlers and preview/API tooling that must
// never trip the bot check.
var allowedAgents = []string{
	"googlebot",
	"bingbot",
	"duckduckbot",
	"slackbot",
	"twitterbot",
	"facebookexternalhit",
}

var botMarkers = []string{
	"bot",
	"crawler",
	"spider",
	"scraper",
	"curl/",
	"wget/",
	"python-requests",
	"go-http-client",
	"headlesschrome",
}

func isBot(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return true
	}
	for _, allowed := range allowedAgents {
		if strings.Contains(ua, allowed) {
			return false
		}
	}
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

// shieldPatterns are crude signatures of common injection and traversal
// attempts, checked against path and query.
var shieldPatterns = []string{
	"union select",
	"or 1=1",
	"information_schema",
	"../",
	"..%2f",
	"<script",
	"%3cscript",
	"etc/passwd",
	"exec(",
	"sleep(",
}

func matchesShield(path, rawQuery string) bool {
	target := strings.ToLower(path)
	if rawQuery != "" {
		target += "?" + strings.ToLower(rawQuery)
	}
	target = strings.ReplaceAll(target, "%20", " ")
	target = strings.ReplaceAll(target, "+", " ")
	for _, pattern := range shieldPatterns {
		if strings.Contains(target, pattern) {
			return true
		}
	}
	return false
}
