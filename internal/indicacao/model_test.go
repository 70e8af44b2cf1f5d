package indicacao

import "testing"

func TestTransicoesDoFunil(t *testing.T) {
	casos := []struct {
		de, para string
		permite  bool
	}{
		{StatusNova, StatusEmAtendimento, true},
		{StatusNova, StatusPerdida, true},
		{StatusEmAtendimento, StatusConvertida, true},
		{StatusEmAtendimento, StatusPerdida, true},
		{StatusPerdida, StatusEmAtendimento, true},
		{StatusNova, StatusConvertida, false},
		{StatusConvertida, StatusEmAtendimento, false},
		{StatusConvertida, StatusPerdida, false},
	}
	for _, c := range casos {
		if got := PodeTransicionar(c.de, c.para); got != c.permite {
			t.Errorf("%s -> %s: esperava %v, veio %v", c.de, c.para, c.permite, got)
		}
	}
}

func TestStatusValidoDoFunil(t *testing.T) {
	for _, s := range []string{StatusNova, StatusEmAtendimento, StatusConvertida, StatusPerdida} {
		if !StatusValido(s) {
			t.Errorf("%s deveria ser válido", s)
		}
	}
	if StatusValido("CANCELADA") {
		t.Error("status desconhecido não deveria ser válido")
	}
}
