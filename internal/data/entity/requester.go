package entity

// Requester is the resolved identity supplied by the boundary layer.
// The core never authenticates; it only honors the elevated flag.
type Requester struct {
	IsAdmin bool
}
