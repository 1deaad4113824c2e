package boards

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Register(rg *gin.RouterGroup, catalog *Catalog) {
	rg.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "boards": catalog.All()})
	})
}
