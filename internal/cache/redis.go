package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is optional: every helper degrades to a miss or a no-op when the
// connection is down, so the service keeps working without it.

var Client *redis.Client

var ErrMiss = errors.New("cache miss")

const (
	resultsKeyPrefix = "results:"     // results:<platform>:<genre>
	guestKeyPrefix   = "guest:lists:" // guest:lists:<guestID>

	ResultsTTL      = 10 * time.Minute
	guestHistoryTTL = 30 * 24 * time.Hour
	guestHistoryMax = 50
)

// Init establishes the redis connection. A failed connection is reported but
// not fatal.
func Init(addr, password string) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := Client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}

// Available checks if redis is connected.
func Available(ctx context.Context) bool {
	if Client == nil {
		return false
	}
	_, err := Client.Ping(ctx).Result()
	return err == nil
}

func resultsKey(platform, genre string) string {
	return resultsKeyPrefix + platform + ":" + genre
}

// GetResults loads a cached results page for a platform/genre selection.
func GetResults(ctx context.Context, platform, genre string, dest interface{}) error {
	if !Available(ctx) {
		return ErrMiss
	}

	val, err := Client.Get(ctx, resultsKey(platform, genre)).Result()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// SetResults caches an assembled results page.
func SetResults(ctx context.Context, platform, genre string, value interface{}) error {
	if !Available(ctx) {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Client.Set(ctx, resultsKey(platform, genre), data, ResultsTTL).Err()
}

// InvalidateResults drops cached results pages. With empty platform/genre all
// pages are dropped, otherwise just the matching one.
func InvalidateResults(ctx context.Context, platform, genre string) error {
	if !Available(ctx) {
		return nil
	}

	if platform != "" && genre != "" {
		return Client.Del(ctx, resultsKey(platform, genre)).Err()
	}

	iter := Client.Scan(ctx, 0, resultsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// GuestSearch is one remembered search of an anonymous visitor.
type GuestSearch struct {
	Platform  string    `json:"platform"`
	Genre     string    `json:"genre"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendGuestSearch records a search in a guest's redis-backed history list.
func AppendGuestSearch(ctx context.Context, guestID string, search GuestSearch) error {
	if !Available(ctx) {
		return nil
	}

	data, err := json.Marshal(search)
	if err != nil {
		return err
	}

	key := guestKeyPrefix + guestID
	pipe := Client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, guestHistoryMax-1)
	pipe.Expire(ctx, key, guestHistoryTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// GuestSearches returns a guest's remembered searches, newest first.
func GuestSearches(ctx context.Context, guestID string) ([]GuestSearch, error) {
	if !Available(ctx) {
		return nil, nil
	}

	vals, err := Client.LRange(ctx, guestKeyPrefix+guestID, 0, guestHistoryMax-1).Result()
	if err != nil {
		return nil, err
	}

	searches := make([]GuestSearch, 0, len(vals))
	for _, v := range vals {
		var s GuestSearch
		if err := json.Unmarshal([]byte(v), &s); err != nil {
			continue
		}
		searches = append(searches, s)
	}
	return searches, nil
}
