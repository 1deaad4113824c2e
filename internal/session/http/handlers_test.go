package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpad-io/blockpad-backend/internal/boards"
	"github.com/blockpad-io/blockpad-backend/internal/console"
	"github.com/blockpad-io/blockpad-backend/internal/projects"
	"github.com/blockpad-io/blockpad-backend/internal/session/service"
	"github.com/blockpad-io/blockpad-backend/internal/workspace"
)

func setupRouter(t *testing.T) (*gin.Engine, *workspace.Bridge) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := projects.NewRedisStore(client)
	sink := console.NewSink(console.NewRepo(client))
	bridge := workspace.NewBridge()
	orch := service.NewOrchestrator(store, bridge, sink, boards.Default(), "uno")

	r := gin.New()
	Register(r.Group("/session"), orch)
	return r, bridge
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProjectHandler(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/projects",
		`{"name":"Blink","workspace_document":"<doc/>","generated_source":"void setup(){}"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OK      bool `json:"ok"`
		Project struct {
			PublicID string `json:"public_id"`
			Name     string `json:"name"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.Project.PublicID)
	assert.Equal(t, "Blink", resp.Project.Name)

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/session/projects", `{"workspace_document":"<doc/>"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOpenProjectHandler_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/open/missing-id", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestSaveHandler(t *testing.T) {
	r, bridge := setupRouter(t)

	t.Run("no active project", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/session/save", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	w := doJSON(t, r, http.MethodPost, "/session/projects", `{"name":"P","workspace_document":"<p/>"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("skip while surface settles", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/session/save", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "skipped")
	})

	t.Run("saved once a snapshot exists", func(t *testing.T) {
		bridge.Push(workspace.Snapshot{Document: "<p2/>", GeneratedSource: "s"})
		w := doJSON(t, r, http.MethodPost, "/session/save", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "saved")
	})
}

func TestImportHandler(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/session/projects/import",
		`{"name":"Uploaded","board":"esp32","workspace_document":"<xml/>"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("unknown board", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/session/projects/import",
			`{"name":"Bad","board":"c64","workspace_document":"<xml/>"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing document", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/session/projects/import", `{"name":"NoDoc","board":"uno"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTabAndBoardHandlers(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPut, "/session/tab", `{"tab":"console"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/session/tab", `{"tab":"settings"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/session/board", `{"board":"mega2560"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/session/board", `{"board":"c64"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Run("snapshot reflects changes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/session", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Session struct {
				ActiveTab string `json:"active_tab"`
				Board     string `json:"board"`
			} `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "console", resp.Session.ActiveTab)
		assert.Equal(t, "mega2560", resp.Session.Board)
	})
}
