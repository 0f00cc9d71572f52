package auth

import "github.com/golang-jwt/jwt/v5"

// ActorClaims identifies who is performing a mutation. Name ends up in the
// audit log's user field.
type ActorClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}
