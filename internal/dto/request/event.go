package request

type CreateEventRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Capacity  int     `json:"capacity" validate:"required,min=1,max=260"`
	SeatPrice float64 `json:"seat_price" validate:"omitempty,min=0"`
}
