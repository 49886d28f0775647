package testutil

import (
	"net/http"

	id "veriadmin/pkg/domain"
	"veriadmin/pkg/requestcontext"
)

// Actor is the caller identity the auth middleware would establish.
type Actor struct {
	UserID         id.UserID
	Role           id.Role
	OrganizationID id.OrganizationID
}

// WithActor puts the actor on the request context, as RequireAuth does for
// a valid token. A nil user ID is left unset.
func WithActor(req *http.Request, a Actor) *http.Request {
	ctx := req.Context()
	if !a.UserID.IsNil() {
		ctx = requestcontext.WithUserID(ctx, a.UserID)
	}
	ctx = requestcontext.WithRole(ctx, a.Role)
	ctx = requestcontext.WithOrganizationID(ctx, a.OrganizationID)
	return req.WithContext(ctx)
}
