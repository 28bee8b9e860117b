package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"gamescout/backend/internal/database"
	"gamescout/backend/internal/models"
	"gamescout/backend/internal/rawg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchedGame(id int64, rating float64) rawg.GameResult {
	return rawg.GameResult{
		RawgID:   id,
		Title:    "Fetched",
		Platform: "Steam",
		Genre:    "RPG",
		Rating:   rating,
	}
}

func TestGetSurveyListsChoices(t *testing.T) {
	router := setupTest(t, nil)

	w := doJSON(router, http.MethodGet, "/survey", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SurveyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Platforms, "Steam")
	assert.Contains(t, resp.Genres, "Metroidvania")
}

func TestPostSurveyRedirectsToResults(t *testing.T) {
	router := setupTest(t, nil)

	w := doJSON(router, http.MethodPost, "/survey",
		`{"platform":"Nintendo Switch","genre":"Platformer"}`, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	location := w.Header().Get("Location")
	assert.Contains(t, location, "/results?")
	assert.Contains(t, location, "genre=Platformer")
}

func TestPostSurveyRejectsUnknownChoice(t *testing.T) {
	router := setupTest(t, nil)

	w := doJSON(router, http.MethodPost, "/survey",
		`{"platform":"Commodore 64","genre":"RPG"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/survey", `{"platform":"Steam"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResultsValidatesParams(t *testing.T) {
	router := setupTest(t, nil)

	w := doJSON(router, http.MethodGet, "/results", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/results?platform=Steam&genre=Cooking", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResultsReturnsGamesForGuest(t *testing.T) {
	fetcher := &stubFetcher{results: []rawg.GameResult{
		fetchedGame(1, 92),
		fetchedGame(2, 88),
	}}
	router := setupTest(t, fetcher)

	w := doJSON(router, http.MethodGet, "/results?platform=Steam&genre=RPG", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ResultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Steam", resp.Platform)
	require.Len(t, resp.Games, 2)
	assert.Equal(t, int64(1), resp.Games[0].RawgID)

	// Anonymous visitors get a history cookie.
	cookies := w.Result().Cookies()
	var guestCookie string
	for _, c := range cookies {
		if c.Name == "guest_id" {
			guestCookie = c.Value
		}
	}
	assert.NotEmpty(t, guestCookie)

	// No saved list row was written for a guest.
	var count int64
	require.NoError(t, database.DB.Model(&models.SavedList{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetResultsSavesHistoryForUser(t *testing.T) {
	fetcher := &stubFetcher{results: []rawg.GameResult{fetchedGame(1, 92)}}
	router := setupTest(t, fetcher)
	userID := createUser(t, "gamefan42", "password123", "user")
	token := loginToken(t, router, "gamefan42", "password123")

	w := doJSON(router, http.MethodGet, "/results?platform=Steam&genre=RPG", "", bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved models.SavedList
	require.NoError(t, database.DB.Where("user_id = ?", userID).First(&saved).Error)
	assert.Equal(t, "Steam", saved.Platform)
	assert.Equal(t, "RPG", saved.Genre)
}

func TestGetResultsDegradesWhenAPIDown(t *testing.T) {
	fetcher := &stubFetcher{err: assert.AnError}
	router := setupTest(t, fetcher)

	w := doJSON(router, http.MethodGet, "/results?platform=Steam&genre=RPG", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ResultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Games)
}

func TestMyListsRequiresLoginForAnonymous(t *testing.T) {
	router := setupTest(t, nil)

	w := doJSON(router, http.MethodGet, "/my-lists", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyListsReturnsHistoryNewestFirst(t *testing.T) {
	router := setupTest(t, nil)
	userID := createUser(t, "gamefan42", "password123", "user")

	for _, entry := range []models.SavedList{
		{UserID: userID, Platform: "Steam", Genre: "RPG"},
		{UserID: userID, Platform: "Nintendo Switch", Genre: "Platformer"},
	} {
		e := entry
		require.NoError(t, database.DB.Create(&e).Error)
	}

	token := loginToken(t, router, "gamefan42", "password123")
	w := doJSON(router, http.MethodGet, "/my-lists", "", bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PaginatedResponse[SavedListResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Meta.TotalItems)
	// Newest entry first.
	assert.GreaterOrEqual(t, resp.Data[0].ID, resp.Data[1].ID)
}

func TestMyListsDoesNotLeakOtherUsers(t *testing.T) {
	router := setupTest(t, nil)
	aliceID := createUser(t, "alice", "password123", "user")
	bobID := createUser(t, "bob", "password123", "user")
	require.NoError(t, database.DB.Create(&models.SavedList{UserID: aliceID, Platform: "Steam", Genre: "RPG"}).Error)
	require.NoError(t, database.DB.Create(&models.SavedList{UserID: bobID, Platform: "Steam", Genre: "Action"}).Error)

	token := loginToken(t, router, "alice", "password123")
	w := doJSON(router, http.MethodGet, "/my-lists", "", bearer(token))
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedResponse[SavedListResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "RPG", resp.Data[0].Genre)
}

func TestAdminPurgeCache(t *testing.T) {
	router := setupTest(t, nil)
	createUser(t, "boss", "password123", "admin")
	require.NoError(t, database.DB.Create(&models.Game{
		RawgID: 1, Platform: "Steam", Genre: "RPG", Title: "Cached", Rating: 80,
	}).Error)

	token := loginToken(t, router, "boss", "password123")

	// Half-specified filter is rejected.
	w := doJSON(router, http.MethodDelete, "/admin/cache?platform=Steam", "", bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodDelete, "/admin/cache?platform=Steam&genre=RPG", "", bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, database.DB.Model(&models.Game{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
