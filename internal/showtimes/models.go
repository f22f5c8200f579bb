package showtimes

// Showtime is one document from the upstream seat feed: a single screening's
// occupancy for a fixed auditorium. SeatRows maps a row label (case-sensitive
// as received) to an occupancy string where each character is '0' (free) or
// '1' (sold), read left to right as seat 1..N. Rows may have differing
// lengths. A Showtime is never mutated after it is parsed; the fetcher always
// replaces the whole document.
type Showtime struct {
	Auditorium string            `json:"auditorium"`
	FilmTitle  string            `json:"filmTitle"`
	StartTime  string            `json:"startTime"`
	SeatRows   map[string]string `json:"seatRows"`
}

// SeatStatus reports whether a single seat can still be bought.
type SeatStatus string

const (
	SeatStatusFree SeatStatus = "FREE"
	SeatStatusSold SeatStatus = "SOLD"
)

// Seat is a single derived seat. Seats are produced on demand from a
// Showtime and never stored.
type Seat struct {
	Row    string
	Number int // 1-based position within the row
	Status SeatStatus
}

// Available reports whether the seat is still free.
func (s Seat) Available() bool {
	return s.Status == SeatStatusFree
}
