package testutil

import (
	"context"
	"net/http"

	"sulfurwatch/pkg/requestcontext"
)

// AsActor returns the request acting as actorID, as the admin middleware
// would after resolving credentials.
func AsActor(req *http.Request, actorID string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	return req.WithContext(ctx)
}

// ActorContext is the context equivalent of AsActor for service tests.
func ActorContext(actorID string) context.Context {
	return requestcontext.WithActorID(context.Background(), actorID)
}
