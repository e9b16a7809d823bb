package ports

// TokenClaims contém as claims extraídas de um token de acesso válido
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService define a interface para emissão e validação de tokens de
// acesso. A implementação fica na infraestrutura; o domínio só conhece o
// contrato.
type TokenService interface {
	Generate(userID, email, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
}
