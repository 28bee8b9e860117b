package rawg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"results": [
		{"id": 101, "name": "Elden Ring", "rating": 4.4, "metacritic": 94, "background_image": "https://img/elden.jpg", "description_raw": "A vast world"},
		{"id": 102, "name": "Hollow Knight", "rating": 4.4, "metacritic": null, "background_image": "https://img/hk.jpg", "description_raw": "Forge your own path"}
	]
}`

func TestSearchGamesMapsSelectionToAPIParams(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	games, err := client.SearchGames(context.Background(), "Steam", "RPG", 20)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "4", gotQuery["platforms"])
	assert.Equal(t, "role-playing-games-rpg", gotQuery["genres"])
	assert.Equal(t, "20", gotQuery["page_size"])
	assert.Equal(t, "-rating", gotQuery["ordering"])
}

func TestSearchGamesNormalizesRatings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	games, err := client.SearchGames(context.Background(), "PlayStation 5", "Action", 20)
	require.NoError(t, err)
	require.Len(t, games, 2)

	// Metacritic score wins when present.
	assert.Equal(t, int64(101), games[0].RawgID)
	assert.Equal(t, 94.0, games[0].Rating)

	// Otherwise the 0-5 average is scaled to 0-100.
	assert.Equal(t, int64(102), games[1].RawgID)
	assert.InDelta(t, 88.0, games[1].Rating, 0.001)

	// Results are tagged with the user's selection.
	assert.Equal(t, "PlayStation 5", games[0].Platform)
	assert.Equal(t, "Action", games[0].Genre)
}

func TestSearchGamesTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 900)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"G","rating":3.0,"description_raw":"` + long + `"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	games, err := client.SearchGames(context.Background(), "Steam", "Shooter", 20)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Len(t, games[0].Description, maxDescriptionLen)
}

func TestSearchGamesUnknownChoice(t *testing.T) {
	client := NewClient("http://unused", "test-key")

	_, err := client.SearchGames(context.Background(), "Atari 2600", "RPG", 20)
	assert.ErrorIs(t, err, ErrUnknownChoice)

	_, err = client.SearchGames(context.Background(), "Steam", "Farming", 20)
	assert.ErrorIs(t, err, ErrUnknownChoice)
}

func TestSearchGamesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.SearchGames(context.Background(), "Steam", "RPG", 20)
	assert.Error(t, err)
}

func TestKnownChoice(t *testing.T) {
	assert.True(t, KnownChoice("Nintendo Switch", "Metroidvania"))
	assert.False(t, KnownChoice("Nintendo Switch", "Sports"))
	assert.False(t, KnownChoice("Dreamcast", "Action"))
}

func TestChoiceListsMatchLookupTables(t *testing.T) {
	for _, p := range Platforms() {
		_, ok := platformIDs[p]
		assert.True(t, ok, "platform %q missing from lookup table", p)
	}
	for _, g := range Genres() {
		_, ok := genreSlugs[g]
		assert.True(t, ok, "genre %q missing from lookup table", g)
	}
}
