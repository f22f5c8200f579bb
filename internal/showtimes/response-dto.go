package showtimes

type SeatResponse struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type SeatPlanResponse struct {
	Auditorium string         `json:"auditorium"`
	FilmTitle  string         `json:"film_title"`
	StartTime  string         `json:"start_time"`
	Seats      []SeatResponse `json:"seats"`
}

type SeatAvailabilityResponse struct {
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

func toSeatResponse(seat Seat) SeatResponse {
	return SeatResponse{
		Row:    seat.Row,
		Number: seat.Number,
		Status: string(seat.Status),
	}
}

func toSeatPlanResponse(doc *Showtime) SeatPlanResponse {
	seats := SeatList(doc)
	out := make([]SeatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, toSeatResponse(seat))
	}
	return SeatPlanResponse{
		Auditorium: doc.Auditorium,
		FilmTitle:  doc.FilmTitle,
		StartTime:  doc.StartTime,
		Seats:      out,
	}
}

func toSeatAvailabilityResponse(seat Seat) SeatAvailabilityResponse {
	return SeatAvailabilityResponse{
		Row:       seat.Row,
		Number:    seat.Number,
		Status:    string(seat.Status),
		Available: seat.Available(),
	}
}
