package auth

// TokenPayload carries the identity embedded in a signed token.
type TokenPayload struct {
	UserID   string
	Email    string
	Username string
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(payload TokenPayload) (string, error)
	Validate(token string) (TokenPayload, error)
}
