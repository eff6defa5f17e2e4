// Package cont carries verified session claims through the request context.
package cont

import (
	"context"

	"igcadmin/entity"
)

type ctxKey string

const claimsKey ctxKey = "sessionClaims"

func PutClaims(c context.Context, claims *entity.Claims) context.Context {
	return context.WithValue(c, claimsKey, *claims)
}

func GetClaims(c context.Context) *entity.Claims {
	claims, ok := c.Value(claimsKey).(entity.Claims)
	if !ok {
		return &entity.Claims{}
	}
	return &claims
}
