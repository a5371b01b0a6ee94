package repair

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/pkg/response"
)

type RepairHandler struct {
	service RepairService
}

func NewRepairHandler(service RepairService) *RepairHandler {
	return &RepairHandler{service: service}
}

func (h *RepairHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/repairs/start", h.startRepair)
	router.POST("/repairs/end", h.endRepair)
	router.GET("/repairs/active/:id", h.activeRepair)
	router.GET("/repairs/loaners", h.availableLoaners)
}

type startRepairRequest struct {
	AssetID       string `json:"assetId" binding:"required"`
	RepairDetails string `json:"repairDetails" binding:"required"`
	TempAssetID   string `json:"tempAssetId"`
}

type endRepairRequest struct {
	AssetID string `json:"assetId" binding:"required"`
}

// @Summary      Start a repair
// @Description  Marks the asset under repair, optionally handing a loaner asset to its current holder
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        request body startRepairRequest true "Repair start request"
// @Success      201  {object}  response.APIResponse{data=Record} "Repair opened"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "Asset or loaner not found"
// @Failure      409  {object}  response.APIResponse "Repair already open"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /repairs/start [post]
func (h *RepairHandler) startRepair(c *gin.Context) {
	var req startRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	var loanerID *string
	if req.TempAssetID != "" {
		loanerID = &req.TempAssetID
	}

	record, err := h.service.StartRepair(c.Request.Context(), StartRepairInput{
		AssetID:       req.AssetID,
		Details:       req.RepairDetails,
		LoanerAssetID: loanerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
		case errors.Is(err, ErrLoanerNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "loaner asset not found", nil)
		case errors.Is(err, ErrRepairAlreadyOpen):
			response.SendAPIResponse(c, http.StatusConflict, false, err.Error(), nil)
		default:
			response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true,
		fmt.Sprintf("repair started for %s", req.AssetID), record)
}

// @Summary      End a repair
// @Description  Closes the open repair and returns any loaner to the available pool
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        request body endRepairRequest true "Repair end request"
// @Success      200  {object}  response.APIResponse "Repair closed"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "Asset or open repair not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /repairs/end [post]
func (h *RepairHandler) endRepair(c *gin.Context) {
	var req endRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	err := h.service.EndRepair(c.Request.Context(), req.AssetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
		case errors.Is(err, ErrNoOpenRepair):
			response.SendAPIResponse(c, http.StatusNotFound, false, "no open repair for asset", nil)
		default:
			response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true,
		fmt.Sprintf("repair ended for %s", req.AssetID), nil)
}

// @Summary      Get the open repair for an asset
// @Tags         repairs
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=Record} "Open repair retrieved"
// @Failure      404  {object}  response.APIResponse "No open repair"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /repairs/active/{id} [get]
func (h *RepairHandler) activeRepair(c *gin.Context) {
	record, err := h.service.ActiveRepair(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNoOpenRepair) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "no open repair for asset", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "open repair fetched", record)
}

// @Summary      List available loaner assets
// @Description  Assets of the given type that are unassigned, not under repair and not already loaned out
// @Tags         repairs
// @Produce      json
// @Param        type     query  string  true   "Asset type"
// @Param        exclude  query  string  false  "Asset ID to exclude (the one entering repair)"
// @Success      200  {object}  response.APIResponse{data=[]Loaner} "Eligible loaners"
// @Failure      400  {object}  response.APIResponse "Missing asset type"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /repairs/loaners [get]
func (h *RepairHandler) availableLoaners(c *gin.Context) {
	assetType := c.Query("type")
	if assetType == "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "type query parameter is required", nil)
		return
	}

	loaners, err := h.service.AvailableLoaners(c.Request.Context(), assetType, c.Query("exclude"))
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "available loaners listed", loaners)
}
