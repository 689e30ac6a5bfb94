package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinvault/internal/app"
	"skinvault/internal/identity"
	"skinvault/internal/repository"
	"skinvault/internal/transport/http/response"
)

type SkinHandler struct {
	catalogService *app.CatalogService
}

type SkinRequest struct {
	Name         string `json:"nome" binding:"required"`
	CollectionID uint   `json:"colecao_id" binding:"required"`
}

func NewSkinHandler(catalogService *app.CatalogService) *SkinHandler {
	return &SkinHandler{catalogService: catalogService}
}

// List accepts two optional query filters, colecao_id (exact match) and
// nome_arma (substring); both combine with AND.
func (h *SkinHandler) List(c *gin.Context) {
	filter := repository.SkinFilter{
		NameContains: c.Query("nome_arma"),
	}
	if raw := c.Query("colecao_id"); raw != "" {
		collectionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid colecao_id")
			return
		}
		filter.CollectionID = uint(collectionID)
	}

	listings, err := h.catalogService.ListSkins(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list skins failed")
		return
	}
	response.OK(c, listings)
}

func (h *SkinHandler) Add(c *gin.Context) {
	var req SkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "skin name and collection id are required")
		return
	}

	skin, err := h.catalogService.AddSkin(app.AddSkinInput{
		Name:         req.Name,
		CollectionID: req.CollectionID,
		Actor:        identity.CurrentUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "skin name and collection id are required")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "add skin failed")
		}
		return
	}
	response.Created(c, skin)
}

func (h *SkinHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "skin name and collection id are required")
		return
	}

	err := h.catalogService.UpdateSkin(app.UpdateSkinInput{
		ID:           id,
		Name:         req.Name,
		CollectionID: req.CollectionID,
		Actor:        identity.CurrentUsername(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "skin name and collection id are required")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update skin failed")
		}
		return
	}
	response.OK(c, nil)
}

func (h *SkinHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteSkin(id, identity.CurrentUsername(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete skin failed")
		return
	}
	response.OK(c, nil)
}
