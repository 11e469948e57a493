// Package utils provides general-purpose helpers shared by the admin
// handlers, the transports and the status client: typed context keys, JSON
// response writing, the resty HTTP client, admin JWT tokens and identifiers.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// OperatorCtxKey stores the subject of the admin token that authenticated
// the request.
var OperatorCtxKey = contextKey("operator")

// GetOperatorFromContext returns the authenticated operator, if any.
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorCtxKey).(string)
	return operator, ok
}
