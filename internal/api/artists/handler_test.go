package artists

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"music-catalog/internal/cache"
	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/service"
	"music-catalog/internal/store/memstore"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T) (*gin.Engine, *service.AlbumService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	st := memstore.New(log)
	c := cache.NewCoherent(cache.NewMemory(0), log)
	artists := service.NewArtistService(st.Artists(), st.Albums(), c, log)
	albums := service.NewAlbumService(st.Albums(), st.Artists(), c, log)

	h := NewHandler(artists, log)
	r := gin.New()
	r.GET("/artistas", h.List)
	r.GET("/artistas/:id", h.Get)
	r.POST("/artistas", h.Create)
	r.PUT("/artistas/:id", h.Update)
	r.PATCH("/artistas/:id", h.Update)
	r.DELETE("/artistas/:id", h.Delete)
	return r, albums
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateConflictAndList(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/artistas", `{"nombre":"Queen"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created catalog.ArtistView
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.Name != "Queen" || created.IsDeleted {
		t.Fatalf("unexpected artist: %+v", created)
	}
	if strings.Contains(w.Body.String(), "albumes") {
		t.Fatalf("artist view carries albums: %s", w.Body.String())
	}

	if w := do(r, http.MethodPost, "/artistas", `{"nombre":"QUEEN"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: status %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/artistas", `{"nombre":"   "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status %d", w.Code)
	}

	do(r, http.MethodPost, "/artistas", `{"nombre":"Queens of the Stone Age"}`)
	do(r, http.MethodPost, "/artistas", `{"nombre":"Blur"}`)

	w = do(r, http.MethodGet, "/artistas?nombre=queen", "")
	var list []catalog.ArtistView
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %+v", list)
	}
}

func TestGetUpdate(t *testing.T) {
	r, _ := newRouter(t)
	do(r, http.MethodPost, "/artistas", `{"nombre":"Queen"}`)
	do(r, http.MethodPost, "/artistas", `{"nombre":"Blur"}`)

	if w := do(r, http.MethodGet, "/artistas/1", ""); w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/artistas/77", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get missing: status %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/artistas/x", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("get bad id: status %d", w.Code)
	}

	w := do(r, http.MethodPut, "/artistas/1", `{"nombre":"Queen + Adam Lambert"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put: status %d body %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPatch, "/artistas/1", `{"nombre":"blur"}`); w.Code != http.StatusConflict {
		t.Fatalf("rename onto Blur: status %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/artistas/1", `{}`); w.Code != http.StatusOK {
		t.Fatalf("empty patch: status %d", w.Code)
	}
}

func TestDeleteGuard(t *testing.T) {
	r, albums := newRouter(t)
	do(r, http.MethodPost, "/artistas", `{"nombre":"Queen"}`)
	price := 7.5
	al, err := albums.Create(context.Background(), catalog.AlbumInput{Name: "Jazz", Artist: "Queen", Price: &price})
	if err != nil {
		t.Fatalf("create album: %v", err)
	}

	if w := do(r, http.MethodDelete, "/artistas/1", ""); w.Code != http.StatusConflict {
		t.Fatalf("delete with albums: status %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/artistas/1", `{"isDeleted":true}`); w.Code != http.StatusConflict {
		t.Fatalf("soft delete via patch with albums: status %d", w.Code)
	}

	if err := albums.Delete(context.Background(), al.ID); err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if w := do(r, http.MethodDelete, "/artistas/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/artistas/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d", w.Code)
	}
}
