package testutil

import (
	"context"
	"net/http"

	id "landregistry/pkg/domain"
	"landregistry/pkg/requestcontext"
)

// As returns ctx acting as account, the way the auth middleware would.
func As(ctx context.Context, account id.AccountID) context.Context {
	return requestcontext.WithCaller(ctx, account)
}

// WithCaller authenticates req as callerID without a token. An unparsable
// id leaves the request anonymous.
func WithCaller(req *http.Request, callerID string) *http.Request {
	if account, err := id.ParseAccountID(callerID); err == nil {
		return req.WithContext(As(req.Context(), account))
	}
	return req
}
