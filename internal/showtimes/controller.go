package showtimes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ihor-shnaider2/cinema-api/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	fetcher *Fetcher
}

func NewController(fetcher *Fetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// GetSeatPlan returns venue metadata plus the full ordered seat list for the
// current showtime.
func (c *Controller) GetSeatPlan(ctx *gin.Context) {
	doc, err := c.fetcher.GetShowtime(ctx.Request.Context())
	if err != nil {
		c.respondNoShowtime(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat plan retrieved successfully", toSeatPlanResponse(doc), nil)
}

// CheckSeat returns the availability of a single seat. The row label is
// uppercased here before it reaches the query layer.
func (c *Controller) CheckSeat(ctx *gin.Context) {
	row := strings.ToUpper(ctx.Param("row"))
	if row == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Row is required", nil, "missing row")
		return
	}

	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, "seat number must be an integer")
		return
	}

	doc, err := c.fetcher.GetShowtime(ctx.Request.Context())
	if err != nil {
		c.respondNoShowtime(ctx, err)
		return
	}

	seat, err := SeatAt(doc, row, number)
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat availability checked successfully", toSeatAvailabilityResponse(seat), nil)
}

func (c *Controller) respondNoShowtime(ctx *gin.Context, err error) {
	if errors.Is(err, ErrNoShowtime) {
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Showtime data unavailable", nil, err.Error())
		return
	}
	// The only other error GetShowtime surfaces is the caller's own
	// cancellation.
	response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Request cancelled", nil, err.Error())
}
