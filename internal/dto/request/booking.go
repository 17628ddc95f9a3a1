package request

type SeatBookingRequest struct {
	SeatID        string  `json:"seat_id" validate:"required,seatid"`
	OccupantName  string  `json:"name" validate:"required,min=1,max=100"`
	OccupantEmail string  `json:"email" validate:"required,email"`
	OccupantPhone *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type CreateBookingRequest struct {
	Seats []SeatBookingRequest `json:"seats" validate:"required,min=1,dive"`
}
