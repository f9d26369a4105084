package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/history"
)

func TestHistoryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := history.NewMemoryStore()
	base := time.Unix(1700000000, 0).UTC()
	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(context.Background(), domain.Message{
			Room:      "lobby",
			Username:  "Alice",
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	r := gin.New()
	r.GET("/history/:room", historyHandler(store, 2))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/lobby", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// Page-limited to the most recent two, oldest first.
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "two", body.Messages[0].Text)
	assert.Equal(t, "three", body.Messages[1].Text)
}

func TestHistoryHandlerUnknownRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/history/:room", historyHandler(history.NewMemoryStore(), 100))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/ghost", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Messages)
}
