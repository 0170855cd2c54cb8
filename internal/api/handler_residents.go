package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portaria-backend/internal/model"
)

// SearchResidents handles GET /api/residents. Staff look residents up by
// unit (and optional block) before registering a package.
func (h *Handler) SearchResidents(c *gin.Context) {
	condominiumID, err := strconv.ParseInt(c.Query("condominium_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid condominium ID"})
		return
	}

	unit := strings.TrimSpace(c.Query("unit"))
	if unit == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unit is required"})
		return
	}
	block := strings.ToUpper(strings.TrimSpace(c.Query("block")))

	query := h.db.WithContext(c.Request.Context()).
		Where("condominium_id = ? AND unit = ?", condominiumID, unit)
	if block != "" {
		query = query.Where("block = ?", block)
	}

	var residents []model.Resident
	if err := query.Order("name ASC").Find(&residents).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve residents"})
		return
	}

	response := make([]residentResponse, 0, len(residents))
	for _, r := range residents {
		response = append(response, newResidentResponse(r))
	}
	c.JSON(http.StatusOK, response)
}
