package models

import "strings"

// TokenPair holds the credentials issued by the backend. Both tokens are
// opaque to the client and are always replaced together; an access token is
// never kept without its paired refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// IsBearer reports whether the token type is usable in an
// "Authorization: Bearer" header.
func (t *TokenPair) IsBearer() bool {
	return t != nil && strings.EqualFold(t.TokenType, "bearer")
}
