package albums

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

func newRouter(t *testing.T) (*gin.Engine, *service.ArtistService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	st := memstore.New(log)
	c := cache.NewCoherent(cache.NewMemory(0), log)
	artists := service.NewArtistService(st.Artists(), st.Albums(), c, log)
	albums := service.NewAlbumService(st.Albums(), st.Artists(), c, log)

	h := NewHandler(albums, log)
	r := gin.New()
	r.GET("/albumes", h.List)
	r.GET("/albumes/:key", h.Get)
	r.POST("/albumes", h.Create)
	r.PUT("/albumes/:key", h.Update)
	r.PATCH("/albumes/:key", h.Update)
	r.DELETE("/albumes/:key", h.Delete)
	return r, artists
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

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

type validationBody struct {
	Error   string            `json:"error"`
	Errores map[string]string `json:"errores"`
}

func mustArtist(t *testing.T, svc *service.ArtistService, name string) {
	t.Helper()
	if _, err := svc.Create(context.Background(), catalog.ArtistInput{Name: name}); err != nil {
		t.Fatalf("create artist: %v", err)
	}
}

func TestCreateAndList(t *testing.T) {
	r, artists := newRouter(t)
	mustArtist(t, artists, "The Beatles")

	w := do(r, http.MethodPost, "/albumes",
		`{"nombre":"Abbey Road","artista":"The Beatles","genero":"Rock","precio":19.99}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	created := decode[map[string]any](t, w)
	if created["artista"] != "The Beatles" || created["nombre"] != "Abbey Road" {
		t.Fatalf("unexpected body: %v", created)
	}
	if _, ok := created["uuid"].(string); !ok {
		t.Fatalf("uuid missing: %v", created)
	}
	if _, leaked := created["artistId"]; leaked {
		t.Fatalf("artist id leaked into view: %v", created)
	}

	w = do(r, http.MethodGet, "/albumes?artista=beatles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	list := decode[[]catalog.AlbumView](t, w)
	if len(list) != 1 || list[0].Artist != "The Beatles" {
		t.Fatalf("unexpected list: %+v", list)
	}

	w = do(r, http.MethodGet, "/albumes?nombre=zzz", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty list: status %d body %s", w.Code, w.Body.String())
	}
}

func TestCreateValidation(t *testing.T) {
	r, artists := newRouter(t)
	mustArtist(t, artists, "Queen")

	w := do(r, http.MethodPost, "/albumes", `{"nombre":" ","artista":"Queen","genero":"Jazz","precio":-2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	body := decode[validationBody](t, w)
	for _, f := range []string{"nombre", "genero", "precio"} {
		if body.Errores[f] == "" {
			t.Fatalf("missing %s in %v", f, body.Errores)
		}
	}

	w = do(r, http.MethodPost, "/albumes", `{"nombre":"Jazz","artista":"Queen"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing price: status %d", w.Code)
	}
	if got := decode[validationBody](t, w).Errores["precio"]; got != "required" {
		t.Fatalf("precio message %q", got)
	}

	w = do(r, http.MethodPost, "/albumes", `{"nombre":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: status %d", w.Code)
	}
}

func TestCreateUnknownArtist(t *testing.T) {
	r, _ := newRouter(t)
	w := do(r, http.MethodPost, "/albumes", `{"nombre":"Phantom","artista":"Ghost Band","precio":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestGetByIDAndToken(t *testing.T) {
	r, artists := newRouter(t)
	mustArtist(t, artists, "Michael Jackson")
	w := do(r, http.MethodPost, "/albumes", `{"nombre":"Thriller","artista":"Michael Jackson","genero":"pop","precio":29.99}`)
	created := decode[catalog.AlbumView](t, w)

	cases := []struct {
		path   string
		status int
	}{
		{"/albumes/1", http.StatusOK},
		{"/albumes/" + created.UUID.String(), http.StatusOK},
		{"/albumes/99", http.StatusNotFound},
		{"/albumes/0", http.StatusBadRequest},
		{"/albumes/not-a-uuid", http.StatusBadRequest},
		{"/albumes/6f1c2b0e-8a4d-4a55-9a2e-1d2f3c4b5a69", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := do(r, http.MethodGet, tc.path, "")
		if w.Code != tc.status {
			t.Fatalf("GET %s: status %d, want %d (%s)", tc.path, w.Code, tc.status, w.Body.String())
		}
	}

	got := decode[catalog.AlbumView](t, do(r, http.MethodGet, "/albumes/1", ""))
	if got.Genre != "Pop" || got.UUID != created.UUID {
		t.Fatalf("unexpected album: %+v", got)
	}
}

func TestUpdatePutAndPatchMerge(t *testing.T) {
	r, artists := newRouter(t)
	mustArtist(t, artists, "The Beatles")
	mustArtist(t, artists, "Michael Jackson")
	do(r, http.MethodPost, "/albumes", `{"nombre":"Abbey Road","artista":"The Beatles","genero":"Rock","precio":19.99}`)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		w := do(r, method, "/albumes/1", `{"precio":500,"artista":"Michael Jackson"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d body %s", method, w.Code, w.Body.String())
		}
		got := decode[catalog.AlbumView](t, w)
		if got.Price != 500 || got.Name != "Abbey Road" || got.Genre != "Rock" {
			t.Fatalf("%s: merge wrong: %+v", method, got)
		}
		if got.Artist != "The Beatles" {
			t.Fatalf("%s: artist reassigned to %q", method, got.Artist)
		}
	}

	if w := do(r, http.MethodPatch, "/albumes/1", `{"precio":-1}`); w.Code != http.StatusBadRequest {
		t.Fatalf("negative price: status %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/albumes/42", `{"precio":1}`); w.Code != http.StatusNotFound {
		t.Fatalf("missing album: status %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/albumes/abc", `{"precio":1}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", w.Code)
	}
}

func TestDelete(t *testing.T) {
	r, artists := newRouter(t)
	mustArtist(t, artists, "Queen")
	do(r, http.MethodPost, "/albumes", `{"nombre":"Jazz","artista":"Queen","precio":7.5}`)

	if w := do(r, http.MethodDelete, "/albumes/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/albumes/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/albumes/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d", w.Code)
	}
}
