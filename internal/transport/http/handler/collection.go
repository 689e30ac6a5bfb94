package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinvault/internal/app"
	"skinvault/internal/identity"
	"skinvault/internal/transport/http/response"
)

type CollectionHandler struct {
	catalogService *app.CatalogService
}

type CollectionRequest struct {
	Name string `json:"nome" binding:"required"`
}

func NewCollectionHandler(catalogService *app.CatalogService) *CollectionHandler {
	return &CollectionHandler{catalogService: catalogService}
}

func (h *CollectionHandler) List(c *gin.Context) {
	collections, err := h.catalogService.ListCollections()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list collections failed")
		return
	}
	response.OK(c, collections)
}

func (h *CollectionHandler) Add(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "collection name is required")
		return
	}

	collection, err := h.catalogService.AddCollection(app.AddCollectionInput{
		Name:  req.Name,
		Actor: identity.CurrentUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "collection name is required")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "add collection failed")
		}
		return
	}
	response.Created(c, collection)
}

// Update reports success even when the id does not exist; the write simply
// affects zero rows.
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "collection name is required")
		return
	}

	err := h.catalogService.UpdateCollection(app.UpdateCollectionInput{
		ID:    id,
		Name:  req.Name,
		Actor: identity.CurrentUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "collection name is required")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update collection failed")
		}
		return
	}
	response.OK(c, nil)
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCollection(id, identity.CurrentUsername(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete collection failed")
		return
	}
	response.OK(c, nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
