package modelo

import (
	"strings"
	"testing"
)

func camposDeTeste() map[string]string {
	return map[string]string{
		"NomeCliente":        "Maria da Silva",
		"DocumentoCliente":   "123.456.789-00",
		"EmailCliente":       "maria@exemplo.com",
		"TelefoneCliente":    "(11) 99999-0000",
		"EnderecoCliente":    "Rua A, 10",
		"ConsumoMedioTotal":  "200,00",
		"PrecoKwh":           "1,10",
		"PrecoKwhFinal":      "0,88",
		"PercentualDesconto": "20,00",
		"ValorLocacao":       "176",
		"TotalPlacas":        "3",
		"Unidades":           "UC 1001, UC 1002",
	}
}

func TestRenderizarRentalPF(t *testing.T) {
	r, err := NovoRenderer()
	if err != nil {
		t.Fatalf("carregar modelos: %v", err)
	}

	html, err := r.Renderizar("rental_pf", camposDeTeste())
	if err != nil {
		t.Fatalf("renderizar: %v", err)
	}

	for _, trecho := range []string{"Maria da Silva", "123.456.789-00", "0,88", "UC 1001, UC 1002", "176"} {
		if !strings.Contains(html, trecho) {
			t.Errorf("HTML renderizado deveria conter %q", trecho)
		}
	}
}

func TestRenderizarTodosOsModelos(t *testing.T) {
	r, err := NovoRenderer()
	if err != nil {
		t.Fatalf("carregar modelos: %v", err)
	}

	for _, nome := range []string{"rental_pf", "rental_pj", "dorata_pf", "dorata_pj"} {
		html, err := r.Renderizar(nome, camposDeTeste())
		if err != nil {
			t.Errorf("renderizar %s: %v", nome, err)
			continue
		}
		if !strings.Contains(html, "Maria da Silva") {
			t.Errorf("modelo %s não usou o nome do cliente", nome)
		}
	}
}

func TestRenderizarModeloInexistente(t *testing.T) {
	r, err := NovoRenderer()
	if err != nil {
		t.Fatalf("carregar modelos: %v", err)
	}

	if _, err := r.Renderizar("rental_x", camposDeTeste()); err == nil {
		t.Fatal("esperava erro para modelo inexistente")
	}
}
