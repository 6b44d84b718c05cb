package api

import "context"

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// viewerIDKey is the context key for the viewer's user ID.
const viewerIDKey ctxKey = "viewerID"

// viewerID returns the viewer's user ID, or "" for an anonymous request.
// Services decide what an anonymous viewer may do.
func viewerID(ctx context.Context) string {
	id, _ := ctx.Value(viewerIDKey).(string)
	return id
}

// withViewerID stores the viewer's user ID in context.
func withViewerID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerIDKey, userID)
}
