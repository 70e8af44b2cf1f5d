// Package modelo carrega os modelos de documento de contrato embutidos no
// binário e os transforma em HTML de rascunho.
package modelo

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var arquivos embed.FS

// Renderer resolve um modelo pelo identificador (ex.: "rental_pf") e o
// executa com um mapa de campos.
type Renderer struct {
	t *template.Template
}

// NovoRenderer faz o parse de todos os modelos embutidos.
func NovoRenderer() (*Renderer, error) {
	t, err := template.ParseFS(arquivos, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("carregar modelos de contrato: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Renderizar executa o modelo identificado com o mapa de campos e devolve
// o HTML. Modelo inexistente é erro: a operação de criação aborta.
func (r *Renderer) Renderizar(nome string, campos map[string]string) (string, error) {
	t := r.t.Lookup(nome + ".html")
	if t == nil {
		return "", fmt.Errorf("modelo de documento %q não encontrado", nome)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, campos); err != nil {
		return "", fmt.Errorf("executar modelo %q: %w", nome, err)
	}
	return sb.String(), nil
}
