package showtimes

import "sort"

// seatStatusOf maps an occupancy character to a seat status. '0' is free,
// '1' is sold, and anything unexpected is treated as sold so a corrupt feed
// can never offer a seat that might not exist.
func seatStatusOf(ch byte) SeatStatus {
	if ch == '0' {
		return SeatStatusFree
	}
	return SeatStatusSold
}

// SeatList flattens a showtime document into seats ordered by row label
// (lexicographic) and then by seat number ascending. The upstream map has no
// ordering, so the sort here is what makes the output deterministic.
func SeatList(doc *Showtime) []Seat {
	labels := make([]string, 0, len(doc.SeatRows))
	for label := range doc.SeatRows {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var seats []Seat
	for _, label := range labels {
		occupancy := doc.SeatRows[label]
		for i := 0; i < len(occupancy); i++ {
			seats = append(seats, Seat{
				Row:    label,
				Number: i + 1,
				Status: seatStatusOf(occupancy[i]),
			})
		}
	}
	return seats
}

// SeatAt answers a point query for one seat. The row label is matched exactly
// as stored; callers normalize case before querying. ErrSeatNotFound covers
// both an unknown row and a number outside [1, len(row)].
func SeatAt(doc *Showtime, row string, number int) (Seat, error) {
	occupancy, ok := doc.SeatRows[row]
	if !ok {
		return Seat{}, ErrSeatNotFound
	}
	if number < 1 || number > len(occupancy) {
		return Seat{}, ErrSeatNotFound
	}
	return Seat{
		Row:    row,
		Number: number,
		Status: seatStatusOf(occupancy[number-1]),
	}, nil
}
