package ports

// TokenClaims is the identity payload embedded in a bearer token.
type TokenClaims struct {
	ID       string
	Username string
	Role     string
}

// TokenService issues and verifies signed, time-limited bearer tokens.
//
// Verify is purely cryptographic plus expiry: it never consults the user
// store, so previously issued tokens stay valid (with their original role)
// until they expire, even if the account was mutated or deleted meanwhile.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}
