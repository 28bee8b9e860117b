package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without a redis connection every helper must degrade instead of failing
// the request that called it.
func TestHelpersDegradeWithoutRedis(t *testing.T) {
	Client = nil
	ctx := context.Background()

	assert.False(t, Available(ctx))

	var dest []string
	assert.ErrorIs(t, GetResults(ctx, "Steam", "RPG", &dest), ErrMiss)
	assert.NoError(t, SetResults(ctx, "Steam", "RPG", []string{"x"}))
	assert.NoError(t, InvalidateResults(ctx, "", ""))

	assert.NoError(t, AppendGuestSearch(ctx, "guest-1", GuestSearch{
		Platform:  "Steam",
		Genre:     "RPG",
		Timestamp: time.Now(),
	}))

	searches, err := GuestSearches(ctx, "guest-1")
	assert.NoError(t, err)
	assert.Empty(t, searches)
}

func TestResultsKey(t *testing.T) {
	assert.Equal(t, "results:Steam:RPG", resultsKey("Steam", "RPG"))
}
