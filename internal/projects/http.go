package projects

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store}

	rg.GET("", h.list)
	rg.PATCH("/:public_id", h.rename)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// the open-project dialog needs metadata only, not full documents
	type summary struct {
		PublicID  string `json:"public_id"`
		Name      string `json:"name"`
		Board     string `json:"board"`
		UpdatedAt string `json:"updated_at"`
	}
	out := make([]summary, 0, len(items))
	for _, p := range items {
		out = append(out, summary{
			PublicID:  p.PublicID,
			Name:      p.Name,
			Board:     p.Board,
			UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	publicID := c.Param("public_id")

	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	p, err := h.store.Update(c.Request.Context(), publicID, UpdateFields{Name: &name})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
