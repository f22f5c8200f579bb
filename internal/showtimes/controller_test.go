package showtimes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihor-shnaider2/cinema-api/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *Fetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	SetupShowtimeRoutes(api, NewController(f))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, path string) (int, response.StandardApiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var body response.StandardApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func healthyFetcher(t *testing.T, rows map[string]string) *Fetcher {
	t.Helper()
	clk := newFakeClock()
	feed := &fakeFeed{respond: alwaysDoc(testShowtime(rows))}
	return newTestFetcher(feed, defaultParams(), clk)
}

func downFetcher(t *testing.T) *Fetcher {
	t.Helper()
	clk := newFakeClock()
	feed := &fakeFeed{respond: alwaysFail(&StatusError{Code: http.StatusBadGateway})}
	return newTestFetcher(feed, defaultParams(), clk)
}

func TestGetSeatPlan(t *testing.T) {
	engine := newTestRouter(healthyFetcher(t, map[string]string{"A": "110", "B": "001"}))

	code, body := doRequest(t, engine, "/api/v1/showtimes/current/seats")

	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", body.Status)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var plan SeatPlanResponse
	require.NoError(t, json.Unmarshal(data, &plan))

	require.Equal(t, "5", plan.Auditorium)
	require.Equal(t, "Interstellar", plan.FilmTitle)
	require.Equal(t, "19:30", plan.StartTime)
	require.Len(t, plan.Seats, 6)
	require.Equal(t, SeatResponse{Row: "A", Number: 1, Status: "SOLD"}, plan.Seats[0])
	require.Equal(t, SeatResponse{Row: "B", Number: 3, Status: "SOLD"}, plan.Seats[5])
}

func TestGetSeatPlan_UnavailableWithoutDocument(t *testing.T) {
	engine := newTestRouter(downFetcher(t))

	code, body := doRequest(t, engine, "/api/v1/showtimes/current/seats")

	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "error", body.Status)
}

func TestCheckSeat(t *testing.T) {
	engine := newTestRouter(healthyFetcher(t, map[string]string{"A": "110"}))

	code, body := doRequest(t, engine, "/api/v1/showtimes/current/seats/A/3")

	require.Equal(t, http.StatusOK, code)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var seat SeatAvailabilityResponse
	require.NoError(t, json.Unmarshal(data, &seat))

	require.Equal(t, "A", seat.Row)
	require.Equal(t, 3, seat.Number)
	require.Equal(t, "FREE", seat.Status)
	require.True(t, seat.Available)
}

func TestCheckSeat_RowIsCaseInsensitiveAtTheAPI(t *testing.T) {
	engine := newTestRouter(healthyFetcher(t, map[string]string{"A": "01"}))

	// Seat 1 is free, seat 2 is sold; both must resolve through the
	// lowercase row label.
	code, body := doRequest(t, engine, "/api/v1/showtimes/current/seats/a/1")

	require.Equal(t, http.StatusOK, code)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var seat SeatAvailabilityResponse
	require.NoError(t, json.Unmarshal(data, &seat))
	require.Equal(t, "A", seat.Row)
	require.Equal(t, "FREE", seat.Status)
	require.True(t, seat.Available)

	code, body = doRequest(t, engine, "/api/v1/showtimes/current/seats/a/2")

	require.Equal(t, http.StatusOK, code)

	data, err = json.Marshal(body.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &seat))
	require.Equal(t, "A", seat.Row)
	require.Equal(t, "SOLD", seat.Status)
	require.False(t, seat.Available)
}

func TestCheckSeat_NotFound(t *testing.T) {
	engine := newTestRouter(healthyFetcher(t, map[string]string{"A": "110"}))

	tests := []struct {
		name string
		path string
	}{
		{"unknown row", "/api/v1/showtimes/current/seats/Z/1"},
		{"number past end of row", "/api/v1/showtimes/current/seats/A/4"},
		{"number zero", "/api/v1/showtimes/current/seats/A/0"},
		{"non-numeric number", "/api/v1/showtimes/current/seats/A/front"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doRequest(t, engine, tt.path)
			require.Equal(t, http.StatusNotFound, code)
			require.Equal(t, "error", body.Status)
		})
	}
}

func TestCheckSeat_UnavailableWithoutDocument(t *testing.T) {
	engine := newTestRouter(downFetcher(t))

	code, _ := doRequest(t, engine, "/api/v1/showtimes/current/seats/A/1")

	require.Equal(t, http.StatusServiceUnavailable, code)
}
