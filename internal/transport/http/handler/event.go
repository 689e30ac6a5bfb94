package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinvault/internal/app"
	"skinvault/internal/transport/http/response"
)

type EventHandler struct {
	catalogService *app.CatalogService
}

func NewEventHandler(catalogService *app.CatalogService) *EventHandler {
	return &EventHandler{catalogService: catalogService}
}

// List returns the newest catalog change events, newest first. An optional
// limit query caps the count; the service default applies otherwise.
func (h *EventHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.catalogService.RecentEvents(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list events failed")
		return
	}
	response.OK(c, events)
}
