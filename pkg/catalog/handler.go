package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/pkg/response"
)

type AssetHandler struct {
	service AssetService
}

func NewAssetHandler(service AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets", h.listAssets)
	router.GET("/assets/:id", h.getAsset)
	router.POST("/assets", h.createAsset)
	router.DELETE("/assets", h.bulkDelete)
	router.GET("/asset-types", h.listTypes)
	router.GET("/specifications", h.listSpecSchemas)
	router.GET("/specifications/:type", h.specSchemaFor)
	router.GET("/assignment-history", h.allAssignmentHistory)
	router.GET("/assignment-history/:id", h.assignmentHistory)
}

type createAssetRequest struct {
	AssetType      string            `json:"assetType" binding:"required"`
	SerialNumber   string            `json:"serialNumber" binding:"required"`
	Brand          string            `json:"brand" binding:"required"`
	Model          string            `json:"model" binding:"required"`
	Specifications map[string]string `json:"specifications"`
	PurchaseDate   string            `json:"purchaseDate"`
	ProductCost    float64           `json:"purchaseCost"`
	GST            float64           `json:"gstPaid"`
	WarrantyExpiry string            `json:"warrantyExpiry"`
	AssignedTo     string            `json:"assignedTo"`
	UnderRepair    bool              `json:"repairStatus"`
}

type bulkDeleteRequest struct {
	AssetIDs []string `json:"assetIds" binding:"required"`
}

// @Summary      Create a new asset
// @Description  Creates an asset with its specifications and optional initial assignment
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body createAssetRequest true "Asset creation request"
// @Success      201  {object}  response.APIResponse "Asset created"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      409  {object}  response.APIResponse "Duplicate serial/brand/type"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets [post]
func (h *AssetHandler) createAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if req.ProductCost < 0 || req.GST < 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "cost fields cannot be negative", nil)
		return
	}

	assetID, err := h.service.CreateAsset(c.Request.Context(), CreateAssetInput{
		AssetType:      req.AssetType,
		SerialNumber:   req.SerialNumber,
		Brand:          req.Brand,
		Model:          req.Model,
		PurchaseDate:   req.PurchaseDate,
		ProductCost:    req.ProductCost,
		GST:            req.GST,
		WarrantyExpiry: req.WarrantyExpiry,
		AssignedTo:     req.AssignedTo,
		UnderRepair:    req.UnderRepair,
	}, req.Specifications)
	if err != nil {
		if errors.Is(err, ErrDuplicateAsset) {
			response.SendAPIResponse(c, http.StatusConflict, false, err.Error(), nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true,
		fmt.Sprintf("asset %s created", assetID), gin.H{"assetId": assetID})
}

// @Summary      Get asset by ID
// @Description  Retrieves a single asset with its flattened specification map
// @Tags         assets
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=AssetView} "Asset retrieved"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id} [get]
func (h *AssetHandler) getAsset(c *gin.Context) {
	asset, err := h.service.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "asset fetched", asset)
}

// @Summary      List all assets
// @Tags         assets
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]AssetView} "Assets retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets [get]
func (h *AssetHandler) listAssets(c *gin.Context) {
	assets, err := h.service.ListAssets(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "assets listed", assets)
}

// @Summary      Bulk delete assets
// @Description  Deletes the listed assets with their specifications and history; missing ids are ignored
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body bulkDeleteRequest true "Asset IDs to delete"
// @Success      200  {object}  response.APIResponse "Deleted count"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets [delete]
func (h *AssetHandler) bulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	deleted, err := h.service.DeleteAssets(c.Request.Context(), req.AssetIDs)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true,
		fmt.Sprintf("deleted %d asset(s)", deleted), gin.H{"deletedCount": deleted})
}

// @Summary      List asset types
// @Description  Alphabetical type list; serves a built-in fallback when the store has none
// @Tags         assets
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]string} "Types retrieved"
// @Router       /asset-types [get]
func (h *AssetHandler) listTypes(c *gin.Context) {
	types, fromFallback := h.service.ListTypes(c.Request.Context())
	if fromFallback {
		response.SendAPIResponseFrom(c, http.StatusOK, true, "asset types listed", types, "fallback")
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "asset types listed", types)
}

// @Summary      List specification schemas
// @Description  Specification field schemas grouped by asset type
// @Tags         assets
// @Produce      json
// @Success      200  {object}  response.APIResponse "Schemas retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /specifications [get]
func (h *AssetHandler) listSpecSchemas(c *gin.Context) {
	schemas, err := h.service.ListSpecSchemas(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "specification schemas listed", schemas)
}

// @Summary      Get specification schema for a type
// @Tags         assets
// @Produce      json
// @Param        type  path  string  true  "Asset type name"
// @Success      200  {object}  response.APIResponse{data=[]SpecField} "Schema retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /specifications/{type} [get]
func (h *AssetHandler) specSchemaFor(c *gin.Context) {
	fields, err := h.service.SpecSchemaFor(c.Request.Context(), c.Param("type"))
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "specification schema fetched", gin.H{"fields": fields})
}

// @Summary      Get assignment history for an asset
// @Tags         assets
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=[]HistoryEntry} "History retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assignment-history/{id} [get]
func (h *AssetHandler) assignmentHistory(c *gin.Context) {
	history, err := h.service.AssignmentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "assignment history fetched", history)
}

// @Summary      Get all assignment history
// @Description  History rows grouped by asset id, newest first
// @Tags         assets
// @Produce      json
// @Success      200  {object}  response.APIResponse "History retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assignment-history [get]
func (h *AssetHandler) allAssignmentHistory(c *gin.Context) {
	history, err := h.service.AllAssignmentHistory(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "assignment history fetched", history)
}
