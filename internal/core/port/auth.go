package port

// TokenPayload carries the verified identity of the acting subject and
// the realm roles granted by the identity provider.
type TokenPayload struct {
	Subject string
	Roles   []string
}

func (p *TokenPayload) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenVerifier interface {
	VerifyToken(token string) (*TokenPayload, error)
}
