package artists

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
	List(ctx context.Context, name string) ([]catalog.ArtistView, error)
	Get(ctx context.Context, id uint) (*catalog.ArtistView, error)
	Create(ctx context.Context, in catalog.ArtistInput) (*catalog.ArtistView, error)
	Update(ctx context.Context, id uint, p catalog.ArtistPatch) (*catalog.ArtistView, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	svc Service
	log *logger.Logger
}

func NewHandler(svc Service, baseLog *logger.Logger) *Handler {
	return &Handler{svc: svc, log: baseLog.With("handler", "artists")}
}

func idParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, catalog.BadRequest("%q is not a valid artist id", raw)
	}
	return uint(id), nil
}

// GET /artistas?nombre=
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Respond(c, h.log, catalog.BadRequest("invalid query: %v", err))
		return
	}
	out, err := h.svc.List(c.Request.Context(), q.Name)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /artistas/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	out, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /artistas
func (h *Handler) Create(c *gin.Context) {
	var in catalog.ArtistInput
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

// PUT|PATCH /artistas/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	var p catalog.ArtistPatch
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

// DELETE /artistas/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := idParam(c)
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
