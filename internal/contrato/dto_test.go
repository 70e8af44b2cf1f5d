package contrato

import "testing"

func dtoValido() CriarContratoDTO {
	return CriarContratoDTO{
		Tipo:               TipoRentalPF,
		Marca:              MarcaRental,
		NomeCliente:        "Maria da Silva",
		DocumentoCliente:   "123.456.789-00",
		PrecoKwh:           1.10,
		PercentualDesconto: 20,
		Unidades:           []UnidadeDTO{{Nome: "UC 1001", Consumos: []float64{300, 320}}},
	}
}

func TestValidarPayloadValido(t *testing.T) {
	dto := dtoValido()
	if campos := dto.Validar(); len(campos) != 0 {
		t.Fatalf("esperava payload válido, veio %v", campos)
	}
}

func TestValidarDevolveMapaDeCampos(t *testing.T) {
	dto := CriarContratoDTO{
		Tipo:               "ALUGUEL_PF",
		Marca:              "OUTRA",
		PrecoKwh:           0,
		PercentualDesconto: 150,
	}
	campos := dto.Validar()

	for _, campo := range []string{"tipo", "marca", "nomeCliente", "documentoCliente", "precoKwh", "percentualDesconto", "unidades"} {
		if campos[campo] == "" {
			t.Errorf("esperava erro para o campo %q", campo)
		}
	}
}

func TestValidarTipoDeOutraMarca(t *testing.T) {
	dto := dtoValido()
	dto.Tipo = TipoDorataPF // marca segue RENTAL

	campos := dto.Validar()
	if campos["tipo"] == "" {
		t.Fatal("esperava erro de tipo incompatível com a marca")
	}
}

func TestValidarUnidadeSemNome(t *testing.T) {
	dto := dtoValido()
	dto.Unidades = []UnidadeDTO{{Nome: "  ", Consumos: []float64{100}}}

	campos := dto.Validar()
	if campos["unidades"] == "" {
		t.Fatal("esperava erro de unidade sem nome")
	}
}

func TestValidarPrecoNegativo(t *testing.T) {
	dto := dtoValido()
	dto.PrecoKwh = -0.5

	if campos := dto.Validar(); campos["precoKwh"] == "" {
		t.Fatal("esperava erro de preço não positivo")
	}
}
