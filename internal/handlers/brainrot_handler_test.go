package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"BrainrotDex/internal/api"
	"BrainrotDex/internal/cli/bootstrap"
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/handlers"
	"BrainrotDex/internal/model"
	"BrainrotDex/internal/repo"
	"BrainrotDex/internal/service"
	"BrainrotDex/internal/storage"
	"BrainrotDex/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

// fakeRemote: внешний API на httptest: две записи, /brainrot/{id} по ним, остальное 404.
func fakeRemote(t *testing.T, down bool) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/brainrot":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Tralalero","cost":100,"income":5},{"id":2,"name":"Bombardiro","cost":200,"income":9}]`))
		case "/brainrot/1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Tralalero","cost":100,"income":5}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

type env struct {
	srv    *httptest.Server
	router http.Handler
	items  *store.ItemStore
	favs   *store.FavoritesStore
}

func newEnv(t *testing.T, remoteDown bool) *env {
	t.Helper()
	remote := fakeRemote(t, remoteDown)
	kv := storage.NewAdapter(repo.NewMemoryBackend(), zap.NewNop().Sugar())
	items := store.NewItemStore(kv, func() time.Time { return testNow })
	favs := store.NewFavoritesStore(kv)
	logger := zap.NewNop().Sugar()
	cat := service.NewCatalog(items, favs, api.NewClient(remote.URL, time.Second), logger)
	tr := service.NewTransfer(cat, func() time.Time { return testNow })
	cfg := &config.Config{PageSize: 8}

	h := handlers.NewHandler(cat, tr, logger, cfg)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return &env{srv: srv, router: h.Router, items: items, favs: favs}
}

func (e *env) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

type listResponse struct {
	Entries  []model.Entry `json:"entries"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Pages    int           `json:"pages"`
	Stats    model.Stats   `json:"stats"`
	Warnings []string      `json:"warnings"`
}

func TestList_MergesRemoteAndLocal(t *testing.T) {
	e := newEnv(t, false)
	_, err := e.items.Create(model.Item{Name: "Mine"})
	require.NoError(t, err)

	resp, body := e.do(t, http.MethodGet, "/api/brainrots", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr listResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	require.Len(t, lr.Entries, 3)
	assert.Equal(t, "api_1", lr.Entries[0].Ref.String())
	assert.Equal(t, "Mine", lr.Entries[2].Name)
	assert.Equal(t, model.Stats{Total: 3, Remote: 2, Local: 1}, lr.Stats)
	assert.Equal(t, 8, lr.Size)
	assert.Empty(t, lr.Warnings)
}

func TestList_Pagination(t *testing.T) {
	e := newEnv(t, false)
	for i := 0; i < 5; i++ {
		_, _ = e.items.Create(model.Item{Name: "local"})
	}
	resp, body := e.do(t, http.MethodGet, "/api/brainrots?page=2&size=4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr listResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.Equal(t, 7, lr.Total)
	assert.Equal(t, 2, lr.Page)
	assert.Equal(t, 2, lr.Pages)
	assert.Len(t, lr.Entries, 3)

	// неподдерживаемый размер страницы → 8
	_, body = e.do(t, http.MethodGet, "/api/brainrots?size=5", "")
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.Equal(t, 8, lr.Size)
}

func TestList_RemoteDownDegrades(t *testing.T) {
	e := newEnv(t, true)
	_, _ = e.items.Create(model.Item{Name: "Mine"})

	resp, body := e.do(t, http.MethodGet, "/api/brainrots", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lr listResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	require.Len(t, lr.Entries, 1)
	assert.NotEmpty(t, lr.Warnings)
}

func TestCreateGetUpdateDelete(t *testing.T) {
	e := newEnv(t, false)

	resp, body := e.do(t, http.MethodPost, "/api/brainrots", `{"name":"Sigma","cost":5000,"income":750,"rarity_1":"Raro"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created model.Entry
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Raro", created.Rarity)
	assert.True(t, created.UserCreated)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	ref := created.Ref.String()
	resp, body = e.do(t, http.MethodGet, "/api/brainrots/"+ref, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Entry
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Sigma", got.Name)

	resp, body = e.do(t, http.MethodPatch, "/api/brainrots/"+ref, `{"income":800}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 800.0, got.Income)
	assert.Equal(t, 5000.0, got.Cost)

	resp, _ = e.do(t, http.MethodDelete, "/api/brainrots/"+ref, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/brainrots/"+ref, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/brainrots/"+ref, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreate_BadInput(t *testing.T) {
	e := newEnv(t, false)
	resp, _ := e.do(t, http.MethodPost, "/api/brainrots", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/brainrots", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	e := newEnv(t, false)
	it, _ := e.items.Create(model.Item{Name: "x"})
	resp, _ := e.do(t, http.MethodPatch, "/api/brainrots/local_"+it.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoteEntries(t *testing.T) {
	e := newEnv(t, false)

	resp, body := e.do(t, http.MethodGet, "/api/brainrots/api_1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Entry
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Tralalero", got.Name)
	assert.True(t, got.IsFromAPI)

	resp, _ = e.do(t, http.MethodGet, "/api/brainrots/api_404", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPatch, "/api/brainrots/api_1", `{"name":"x"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/brainrots/api_1", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRemoteDetail_Down(t *testing.T) {
	e := newEnv(t, true)
	resp, _ := e.do(t, http.MethodGet, "/api/brainrots/api_1", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRemoteDisabled(t *testing.T) {
	cfg := &config.Config{PageSize: 8, RemoteURL: ""}
	app := bootstrap.Build(cfg, repo.NewMemoryBackend(), zap.NewNop().Sugar())
	h := handlers.NewHandler(app.Catalog, app.Transfer, app.Logger, cfg)

	w := httptest.NewRecorder()
	h.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brainrots/api_1", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	h.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/favorites/api_1/toggle", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	h.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brainrots", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list handlers.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Warnings)
	assert.Zero(t, list.Stats.Remote)
}

func TestInvalidRef(t *testing.T) {
	e := newEnv(t, false)
	resp, _ := e.do(t, http.MethodGet, "/api/brainrots/local_", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFavorites(t *testing.T) {
	e := newEnv(t, false)
	it, _ := e.items.Create(model.Item{Name: "Mine"})

	resp, body := e.do(t, http.MethodPost, "/api/favorites/api_1/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var tr handlers.ToggleResponse
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.True(t, tr.Favorite)

	resp, _ = e.do(t, http.MethodPost, "/api/favorites/local_"+it.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/api/favorites", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var favs []model.Favorite
	require.NoError(t, json.Unmarshal(body, &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, model.OriginRemote, favs[0].Origin)

	// ref без префикса: локальный id
	resp, _ = e.do(t, http.MethodDelete, "/api/favorites/"+it.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.False(t, e.favs.IsFavorite(model.LocalRef(it.ID)))
	assert.True(t, e.favs.IsFavorite(model.RemoteRef("1")))
	stored, _ := e.items.GetByID(it.ID)
	assert.False(t, stored.Favorite)

	resp, _ = e.do(t, http.MethodDelete, "/api/favorites/api_1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.False(t, e.favs.IsFavorite(model.RemoteRef("1")))

	resp, _ = e.do(t, http.MethodPost, "/api/favorites/local_missing/toggle", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/favorites/api_", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportImport(t *testing.T) {
	e := newEnv(t, false)
	resp, _ := e.do(t, http.MethodPost, "/api/samples", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "brainrots-backup-2025-06-15.json")
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, "1.0", snap.Version)

	resp, _ = e.do(t, http.MethodDelete, "/api/data", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, e.items.GetAll())

	resp, out := e.do(t, http.MethodPost, "/api/import", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(out))
	assert.JSONEq(t, `{"items":3,"favorites":1}`, string(out))
	assert.Equal(t, snap.Items, e.items.GetAll())
}

func TestImport_Invalid(t *testing.T) {
	e := newEnv(t, false)
	it, _ := e.items.Create(model.Item{Name: "keep"})

	resp, _ := e.do(t, http.MethodPost, "/api/import", `{"items":"not-an-array"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	all := e.items.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, it.ID, all[0].ID)
}

func TestImport_TooLarge(t *testing.T) {
	e := newEnv(t, false)
	big := `{"items":[],"pad":"` + strings.Repeat("x", 11<<20) + `"}`
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestSeedSamples_OnlyWhenEmpty(t *testing.T) {
	e := newEnv(t, false)
	_, body := e.do(t, http.MethodPost, "/api/samples", "")
	assert.JSONEq(t, `{"seeded":3}`, string(body))
	_, body = e.do(t, http.MethodPost, "/api/samples", "")
	assert.JSONEq(t, `{"seeded":0}`, string(body))
}

func TestGzipResponse(t *testing.T) {
	e := newEnv(t, false)
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/api/favorites", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	// ручной заголовок отключает прозрачную распаковку в транспорте
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	raw, _ := io.ReadAll(resp.Body)
	assert.False(t, bytes.HasPrefix(raw, []byte("[")))
}
