package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"debato/middlewares"
	"debato/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDebateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(middlewares.Identity())
	routes.SetupDebateRoutes(api)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreateDebateRejectsBadPayload(t *testing.T) {
	router := newDebateRouter(t)

	w := doJSON(router, http.MethodPost, "/api/debates", `{"difficulty":"easy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing required fields")

	w = doJSON(router, http.MethodPost, "/api/debates", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/debates",
		`{"topicId":"nothex","difficulty":"easy","totalTimeLimit":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "topic id must be a valid object id")
}

func TestCreateDebateRejectsBadSettings(t *testing.T) {
	router := newDebateRouter(t)
	topicID := primitive.NewObjectID().Hex()

	body := fmt.Sprintf(`{"topicId":"%s","difficulty":"brutal","totalTimeLimit":10}`, topicID)
	w := doJSON(router, http.MethodPost, "/api/debates", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown difficulty")
	assert.Contains(t, w.Body.String(), "difficulty")

	body = fmt.Sprintf(`{"topicId":"%s","difficulty":"easy","totalTimeLimit":7}`, topicID)
	w = doJSON(router, http.MethodPost, "/api/debates", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "time limit outside the allowed choices")
	assert.Contains(t, w.Body.String(), "time limit")
}

func TestPatchDebateRejectsUnknownAction(t *testing.T) {
	router := newDebateRouter(t)
	id := primitive.NewObjectID().Hex()

	w := doJSON(router, http.MethodPatch, "/api/debates/"+id, `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid action")

	w = doJSON(router, http.MethodPatch, "/api/debates/"+id, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "action is required")
}

func TestPatchDebateBadIDIsNotFound(t *testing.T) {
	router := newDebateRouter(t)

	w := doJSON(router, http.MethodPatch, "/api/debates/nothex", `{"action":"start"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDebateBadIDIsNotFound(t *testing.T) {
	router := newDebateRouter(t)

	w := doJSON(router, http.MethodGet, "/api/debates/nothex", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessageRejectsBadContent(t *testing.T) {
	router := newDebateRouter(t)
	path := "/api/debates/" + primitive.NewObjectID().Hex() + "/messages"

	w := doJSON(router, http.MethodPost, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "content is required")

	w = doJSON(router, http.MethodPost, path, `{"content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "whitespace-only content")

	oversized := strings.Repeat("a", 1001)
	w = doJSON(router, http.MethodPost, path, fmt.Sprintf(`{"content":"%s"}`, oversized))
	assert.Equal(t, http.StatusBadRequest, w.Code, "content over the character limit")
}

func TestAiTurnBadIDIsNotFound(t *testing.T) {
	router := newDebateRouter(t)

	w := doJSON(router, http.MethodPost, "/api/debates/nothex/ai-turn", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "empty body is tolerated, bad id is not")
}

func TestDebateHistoryRequiresAccount(t *testing.T) {
	router := newDebateRouter(t)

	w := doJSON(router, http.MethodGet, "/api/debates/history", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "guests have no history endpoint")
}
