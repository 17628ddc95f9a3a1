package utils

import (
	"context"

	"event-seating/internal/data/entity"
)

type contextKey string

const requesterKey contextKey = "requester"

// SetRequesterContext attaches the resolved requester to the context at the
// boundary. Core operations still take the requester as an explicit
// argument; the context carries it only between middleware and handler.
func SetRequesterContext(ctx context.Context, requester entity.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, requester)
}

func GetRequesterFromContext(ctx context.Context) entity.Requester {
	requester, ok := ctx.Value(requesterKey).(entity.Requester)
	if !ok {
		return entity.Requester{}
	}
	return requester
}
