package showtimes

import (
	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(rg *gin.RouterGroup, controller *Controller) {
	showtimes := rg.Group("/showtimes")
	{
		// Seat availability for the current screening
		showtimes.GET("/current/seats", controller.GetSeatPlan)            // GET /api/v1/showtimes/current/seats
		showtimes.GET("/current/seats/:row/:number", controller.CheckSeat) // GET /api/v1/showtimes/current/seats/:row/:number
	}
}
