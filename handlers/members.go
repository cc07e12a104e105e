package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterpad/rosterpad/internal/members"
)

// RegisterMemberRoutes wires the member registry endpoints. Listing the
// roster is the protected operation: it goes through the session gate.
// Member creation and unlock-password verification are open at this layer,
// matching the UI flow where the roster form is reachable pre-login.
func RegisterMemberRoutes(r *gin.Engine, svc *members.Service, requireSession gin.HandlerFunc) {
	r.GET("/api/members", requireSession, func(c *gin.Context) {
		list, err := svc.ListWithNotes()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.POST("/api/members", func(c *gin.Context) {
		var req struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Password  string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		m, created, err := svc.Create(req.FirstName, req.LastName, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		// never expose the stored unlock hash
		c.JSON(status, m.Profile())
	})

	r.POST("/api/members/:id/verify-password", func(c *gin.Context) {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ok, err := svc.VerifyPassword(c.Param("id"), req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"isValid": ok})
	})
}
