package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gamescout/backend/internal/monitoring"
)

// ErrUnknownChoice is returned when a platform or genre label has no RAWG
// identifier in the lookup tables.
var ErrUnknownChoice = errors.New("unknown platform or genre")

// platformIDs maps the survey's platform labels to RAWG platform IDs.
var platformIDs = map[string]int{
	"Steam":           4,   // PC
	"Xbox Series X|S": 186, // Xbox Series X/S
	"PlayStation 5":   187,
	"Nintendo Switch": 7,
}

// genreSlugs maps the survey's genre labels to RAWG genre slugs.
var genreSlugs = map[string]string{
	"RPG":          "role-playing-games-rpg",
	"Shooter":      "shooter",
	"Platformer":   "platformer",
	"Metroidvania": "metroidvania",
	"Action":       "action",
}

const maxDescriptionLen = 500

// GameResult is a single game as returned by a RAWG search, with the rating
// already normalized to the 0-100 scale.
type GameResult struct {
	RawgID      int64   `json:"rawg_id"`
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// Client queries the RAWG video games database API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a RAWG API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Platforms returns the selectable platform labels.
func Platforms() []string {
	return []string{"Steam", "Xbox Series X|S", "PlayStation 5", "Nintendo Switch"}
}

// Genres returns the selectable genre labels.
func Genres() []string {
	return []string{"RPG", "Shooter", "Platformer", "Metroidvania", "Action"}
}

// KnownChoice reports whether both labels have RAWG identifiers.
func KnownChoice(platform, genre string) bool {
	_, okP := platformIDs[platform]
	_, okG := genreSlugs[genre]
	return okP && okG
}

type searchResponse struct {
	Results []struct {
		ID              int64   `json:"id"`
		Name            string  `json:"name"`
		Rating          float64 `json:"rating"`
		Metacritic      *int    `json:"metacritic"`
		BackgroundImage string  `json:"background_image"`
		DescriptionRaw  string  `json:"description_raw"`
	} `json:"results"`
}

// SearchGames fetches games for a platform/genre selection, ordered by
// rating descending.
func (c *Client) SearchGames(ctx context.Context, platform, genre string, pageSize int) ([]GameResult, error) {
	platformID, ok := platformIDs[platform]
	if !ok {
		return nil, ErrUnknownChoice
	}
	genreSlug, ok := genreSlugs[genre]
	if !ok {
		return nil, ErrUnknownChoice
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("platforms", strconv.Itoa(platformID))
	params.Set("genres", genreSlug)
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("ordering", "-rating")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.RawgRequestsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("rawg request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.RawgRequestsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("rawg request failed: status %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		monitoring.RawgRequestsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("rawg response decode failed: %w", err)
	}
	monitoring.RawgRequestsTotal.WithLabelValues("success").Inc()

	games := make([]GameResult, 0, len(data.Results))
	for _, g := range data.Results {
		games = append(games, GameResult{
			RawgID: g.ID,
			Title:  g.Name,
			// Tag results with the user's selection rather than the full
			// platform/genre lists RAWG reports per game.
			Platform:    platform,
			Genre:       genre,
			Rating:      normalizeRating(g.Rating, g.Metacritic),
			ImageURL:    g.BackgroundImage,
			Description: truncate(g.DescriptionRaw, maxDescriptionLen),
		})
	}

	return games, nil
}

// normalizeRating converts RAWG's 0-5 average to the 0-100 scale, preferring
// the metacritic score when one exists (already 0-100).
func normalizeRating(rating float64, metacritic *int) float64 {
	if metacritic != nil && *metacritic > 0 {
		return float64(*metacritic)
	}
	return rating * 20
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
