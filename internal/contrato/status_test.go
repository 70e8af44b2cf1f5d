package contrato

import "testing"

func TestTransicoesDeStatus(t *testing.T) {
	casos := []struct {
		de, para Status
		permite  bool
	}{
		{StatusDraft, StatusApproved, true},
		{StatusApproved, StatusExpired, true},
		{StatusDraft, StatusExpired, false},
		{StatusApproved, StatusDraft, false},
		{StatusExpired, StatusDraft, false},
		{StatusExpired, StatusApproved, false},
		{StatusApproved, StatusApproved, false},
	}
	for _, c := range casos {
		if got := c.de.PodeTransicionar(c.para); got != c.permite {
			t.Errorf("%s -> %s: esperava %v, veio %v", c.de, c.para, c.permite, got)
		}
	}
}

func TestEditavelSomenteEmRascunho(t *testing.T) {
	if !StatusDraft.Editavel() {
		t.Error("DRAFT deveria ser editável")
	}
	if StatusApproved.Editavel() {
		t.Error("APPROVED não deveria ser editável")
	}
	if StatusExpired.Editavel() {
		t.Error("EXPIRED não deveria ser editável")
	}
}

func TestStatusValido(t *testing.T) {
	if !StatusDraft.Valido() || !StatusApproved.Valido() || !StatusExpired.Valido() {
		t.Error("status conhecidos deveriam ser válidos")
	}
	if Status("PENDENTE").Valido() {
		t.Error("status desconhecido não deveria ser válido")
	}
}

func TestModeloDocumento(t *testing.T) {
	if got := ModeloDocumento(TipoRentalPF); got != "rental_pf" {
		t.Fatalf("esperava rental_pf, veio %s", got)
	}
	if got := ModeloDocumento(TipoDorataPJ); got != "dorata_pj" {
		t.Fatalf("esperava dorata_pj, veio %s", got)
	}
}
