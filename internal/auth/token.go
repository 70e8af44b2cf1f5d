package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis reconhecidos pela API.
const (
	PerfilAdmin    = "ADMIN"
	PerfilVendedor = "VENDEDOR"
)

// Claims emitidas pelo serviço de autenticação externo. A API só valida e
// lê; emissão, login e refresh ficam fora daqui.
type Claims struct {
	UserID uint   `json:"userId"`
	Nome   string `json:"nome"`
	Perfil string `json:"perfil"` // "ADMIN" ou "VENDEDOR"
	Marca  string `json:"marca"`  // "RENTAL" ou "DORATA"
	jwt.RegisteredClaims
}

// ParseAndValidate valida assinatura HS256 e expiração e devolve as claims.
func ParseAndValidate(tokenStr, segredo string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(segredo), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}

	return c, nil
}
