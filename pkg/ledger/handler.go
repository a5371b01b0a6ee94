package ledger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/pkg/response"
)

type LedgerHandler struct {
	service LedgerService
}

func NewLedgerHandler(service LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.Engine) {
	router.PUT("/assets/:id", h.reassign)
}

type reassignRequest struct {
	AssignedTo  string `json:"assignedTo"`
	UnderRepair bool   `json:"repairStatus"`
}

// @Summary      Reassign an asset
// @Description  Transfers the asset to a new holder (empty to unassign) and overwrites its repair flag
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Param        request body reassignRequest true "New holder and repair flag"
// @Success      200  {object}  response.APIResponse "Asset updated"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id} [put]
func (h *LedgerHandler) reassign(c *gin.Context) {
	assetID := c.Param("id")

	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	var newHolder *string
	if req.AssignedTo != "" {
		newHolder = &req.AssignedTo
	}

	err := h.service.Reassign(c.Request.Context(), ReassignInput{
		AssetID:     assetID,
		NewHolderID: newHolder,
		UnderRepair: req.UnderRepair,
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true,
		fmt.Sprintf("asset %s updated", assetID), nil)
}
