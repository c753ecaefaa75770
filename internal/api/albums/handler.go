package albums

import (
	"context"
	"net/http"
	"strconv"

	"music-catalog/internal/api/httperr"
	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

type Service interface {
	List(ctx context.Context, name, artist string) ([]catalog.AlbumView, error)
	Get(ctx context.Context, id uint) (*catalog.AlbumView, error)
	GetByToken(ctx context.Context, token string) (*catalog.AlbumView, error)
	Create(ctx context.Context, in catalog.AlbumInput) (*catalog.AlbumView, error)
	Update(ctx context.Context, id uint, p catalog.AlbumPatch) (*catalog.AlbumView, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	svc Service
	log *logger.Logger
}

func NewHandler(svc Service, baseLog *logger.Logger) *Handler {
	return &Handler{svc: svc, log: baseLog.With("handler", "albums")}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, catalog.BadRequest("%q is not a valid album id", raw)
	}
	return uint(id), nil
}

// ------------------------------
// GET /albumes?nombre=&artista=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Respond(c, h.log, catalog.BadRequest("invalid query: %v", err))
		return
	}
	out, err := h.svc.List(c.Request.Context(), q.Name, q.Artist)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /albumes/:key  (numeric id, or the album uuid)
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("key")

	var (
		out *catalog.AlbumView
		err error
	)
	if _, numErr := strconv.ParseUint(key, 10, 64); numErr == nil {
		id, perr := parseID(key)
		if perr != nil {
			httperr.Respond(c, h.log, perr)
			return
		}
		out, err = h.svc.Get(c.Request.Context(), id)
	} else {
		out, err = h.svc.GetByToken(c.Request.Context(), key)
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /albumes
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var in catalog.AlbumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadBody(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ------------------------------
// PUT|PATCH /albumes/:key  (same partial merge)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c.Param("key"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	var p catalog.AlbumPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadBody(c, err)
		return
	}
	out, err := h.svc.Update(c.Request.Context(), id, p)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// DELETE /albumes/:key
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("key"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
