package auth

import (
	"context"
	"net/http"
	"strings"
)

// Ator é quem executa uma operação. Vai explícito como parâmetro para os
// serviços em vez de ser rebuscado da sessão a cada chamada.
type Ator struct {
	ID     uint
	Nome   string
	Perfil string
	Marca  string
}

// Admin informa se o ator tem perfil administrativo.
func (a Ator) Admin() bool {
	return a.Perfil == PerfilAdmin
}

type ctxKey string

const ctxAtor ctxKey = "ator"

// AtorDoContexto recupera o ator colocado pelo middleware.
func AtorDoContexto(ctx context.Context) (Ator, bool) {
	a, ok := ctx.Value(ctxAtor).(Ator)
	return a, ok
}

// Middleware valida o Bearer token e injeta o ator no contexto da
// requisição.
func Middleware(segredo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "Token ausente", http.StatusUnauthorized)
				return
			}
			claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "), segredo)
			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}
			ator := Ator{
				ID:     claims.UserID,
				Nome:   claims.Nome,
				Perfil: claims.Perfil,
				Marca:  claims.Marca,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxAtor, ator)))
		})
	}
}

// RequireAdmin barra quem não tem perfil administrativo.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ator, ok := AtorDoContexto(r.Context())
		if !ok || !ator.Admin() {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
