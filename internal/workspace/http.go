package workspace

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Handler struct {
	bridge  *Bridge
	onPush  func()
	limiter *rate.Limiter
}

// Register wires the bridge endpoints. onPush runs after every accepted
// snapshot push (the session layer uses it for dirty tracking); it may be nil.
func Register(rg *gin.RouterGroup, bridge *Bridge, onPush func()) {
	h := &Handler{
		bridge: bridge,
		onPush: onPush,
		// the editor pushes on every change burst; 20/s sustained with a
		// burst of 40 is far above what a human editing session produces
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}

	rg.GET("", h.get)
	rg.PUT("", h.push)
	rg.POST("/mount", h.mount)
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"workspace_document": h.bridge.Seeded(),
		"mounted":            h.bridge.Mounted(),
	})
}

type pushReq struct {
	WorkspaceDocument string `json:"workspace_document"`
	GeneratedSource   string `json:"generated_source"`
}

func (h *Handler) push(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many snapshot pushes"})
		return
	}

	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	h.bridge.Push(Snapshot{
		Document:        req.WorkspaceDocument,
		GeneratedSource: req.GeneratedSource,
	})
	if h.onPush != nil {
		h.onPush()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type mountReq struct {
	Mounted *bool `json:"mounted"`
}

func (h *Handler) mount(c *gin.Context) {
	var req mountReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Mounted == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	h.bridge.SetMounted(*req.Mounted)
	c.JSON(http.StatusOK, gin.H{"ok": true, "mounted": *req.Mounted})
}
