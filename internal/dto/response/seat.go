package response

type SeatResponse struct {
	SeatID string  `json:"seat_id"`
	Row    string  `json:"row"`
	Column int     `json:"column"`
	Price  float64 `json:"price"`
	Booked bool    `json:"booked"`
}

type SeatMapResponse struct {
	EventID string         `json:"event_id"`
	Date    string         `json:"date"`
	Seats   []SeatResponse `json:"seats"`
}
