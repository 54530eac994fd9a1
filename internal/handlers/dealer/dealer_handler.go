// internal/handlers/dealer/dealer_handler.go
package dealer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	dealerdomain "vahanbazaar-service/internal/domain/dealer"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	dealerservice "vahanbazaar-service/internal/service/dealer"
)

type DealerHandler struct {
	dealerService *dealerservice.Service
}

func NewDealerHandler(dealerService *dealerservice.Service) *DealerHandler {
	return &DealerHandler{dealerService: dealerService}
}

// List returns the verified dealer directory.
// GET /dealers?city=pune&category=bike
func (h *DealerHandler) List(c *gin.Context) {
	var filters dealerdomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid dealer query", err)
		return
	}

	result, err := h.dealerService.List(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list dealers", err)
		return
	}

	response.Success(c, http.StatusOK, "dealers retrieved", result)
}

// Get returns one dealer with its active advert count.
// GET /dealers/:id
func (h *DealerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid dealer ID", err)
		return
	}

	d, err := h.dealerService.Get(c.Request.Context(), id)
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "dealer not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load dealer", err)
		return
	}

	response.Success(c, http.StatusOK, "dealer retrieved", d)
}
