package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterpad/rosterpad/internal/notes"
)

// RegisterNoteRoutes wires the note ledger endpoints.
func RegisterNoteRoutes(r *gin.Engine, svc *notes.Service) {
	r.POST("/api/notes", func(c *gin.Context) {
		var req struct {
			MemberID string `json:"memberId"`
			Text     string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		n, err := svc.Create(req.MemberID, req.Text)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, n)
	})

	r.PATCH("/api/notes/:id", func(c *gin.Context) {
		var req struct {
			Text     string `json:"text"`
			MemberID string `json:"memberId"` // optional: scopes the update to one member
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		n, err := svc.Update(c.Param("id"), req.Text, req.MemberID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	})

	r.DELETE("/api/notes/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}
