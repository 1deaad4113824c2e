package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blockpad-io/blockpad-backend/internal/projects"
	"github.com/blockpad-io/blockpad-backend/internal/session/domain"
	"github.com/blockpad-io/blockpad-backend/internal/session/service"
)

type Handler struct {
	orch *service.Orchestrator
}

func Register(rg *gin.RouterGroup, orch *service.Orchestrator) {
	h := &Handler{orch: orch}

	rg.GET("", h.snapshot)
	rg.POST("/projects", h.create)
	rg.POST("/projects/import", h.importProject)
	rg.POST("/open/:public_id", h.open)
	rg.POST("/save", h.save)
	rg.PUT("/tab", h.setTab)
	rg.PUT("/board", h.setBoard)
}

func (h *Handler) snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": h.orch.Snapshot()})
}

type createReq struct {
	Name              string `json:"name"`
	WorkspaceDocument string `json:"workspace_document"`
	GeneratedSource   string `json:"generated_source"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.orch.CreateNewProject(c.Request.Context(), req.Name, req.WorkspaceDocument, req.GeneratedSource)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

type importReq struct {
	Name              string `json:"name"`
	Board             string `json:"board"`
	WorkspaceDocument string `json:"workspace_document"`
	GeneratedSource   string `json:"generated_source"`
}

func (h *Handler) importProject(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || req.WorkspaceDocument == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.orch.ImportProject(c.Request.Context(), req.Name, req.Board, req.WorkspaceDocument, req.GeneratedSource)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownBoard) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) open(c *gin.Context) {
	publicID := c.Param("public_id")

	p, err := h.orch.OpenProject(c.Request.Context(), publicID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) save(c *gin.Context) {
	result, err := h.orch.SaveProject(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveProject) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "no active project"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}

type tabReq struct {
	Tab string `json:"tab"`
}

func (h *Handler) setTab(c *gin.Context) {
	var req tabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.orch.SetActiveTab(domain.Tab(req.Tab)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tab": req.Tab})
}

type boardReq struct {
	Board string `json:"board"`
}

func (h *Handler) setBoard(c *gin.Context) {
	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.orch.SelectBoard(req.Board); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "board": req.Board})
}
