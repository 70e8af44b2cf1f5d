package calculo

import (
	"math"
	"testing"
)

func TestCenarioCompleto(t *testing.T) {
	unidades := []UnidadeConsumo{
		{Nome: "U1", Consumos: []float64{100, 200, 300}},
	}

	d := CalcularValoresContrato(unidades, 1.0, 0.20)

	if len(d.Unidades) != 1 {
		t.Fatalf("esperava 1 unidade, veio %d", len(d.Unidades))
	}
	if d.Unidades[0].ConsumoMedio != 200 {
		t.Fatalf("esperava média 200, veio %f", d.Unidades[0].ConsumoMedio)
	}
	if !d.Unidades[0].PossuiLeituras {
		t.Fatal("esperava PossuiLeituras=true")
	}
	if d.ConsumoMedioTotal != 200 {
		t.Fatalf("esperava total 200, veio %f", d.ConsumoMedioTotal)
	}
	if math.Abs(d.PrecoKwhFinal-0.8) > 1e-9 {
		t.Fatalf("esperava preço final 0.8, veio %f", d.PrecoKwhFinal)
	}
	if d.ValorLocacaoTotal != 160 {
		t.Fatalf("esperava valor de locação 160, veio %d", d.ValorLocacaoTotal)
	}
	if d.TotalPlacas != 3 {
		t.Fatalf("esperava 3 placas, veio %d", d.TotalPlacas)
	}
}

func TestValorLocacaoTruncaNuncaArredonda(t *testing.T) {
	// 759.3 × 0.6 = 455.58 -> 455, não 456.
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: []float64{759.3}}}

	d := CalcularValoresContrato(unidades, 1.0, 0.40)

	if d.ValorLocacaoTotal != 455 {
		t.Fatalf("esperava 455 (truncado), veio %d", d.ValorLocacaoTotal)
	}
}

func TestFormulaPlacas(t *testing.T) {
	// 1500 / 66 = 22.72 -> 22 placas.
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: []float64{1500}}}

	d := CalcularValoresContrato(unidades, 1.0, 0)

	if d.TotalPlacas != 22 {
		t.Fatalf("esperava 22 placas, veio %d", d.TotalPlacas)
	}
}

func TestUnidadeSemLeituraValida(t *testing.T) {
	// Zeros e negativos significam "mês sem leitura": média 0, sem divisão
	// por zero e sem NaN.
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: []float64{0, -5, 0}}}

	d := CalcularValoresContrato(unidades, 1.0, 0)

	u := d.Unidades[0]
	if math.IsNaN(u.ConsumoMedio) || math.IsInf(u.ConsumoMedio, 0) {
		t.Fatalf("média inválida: %f", u.ConsumoMedio)
	}
	if u.ConsumoMedio != 0 {
		t.Fatalf("esperava média 0, veio %f", u.ConsumoMedio)
	}
	if u.PossuiLeituras {
		t.Fatal("esperava PossuiLeituras=false para unidade sem leitura válida")
	}
}

func TestMediaIgnoraMesesSemLeitura(t *testing.T) {
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: []float64{100, 0, 200, -10}}}

	d := CalcularValoresContrato(unidades, 1.0, 0)

	if d.Unidades[0].ConsumoMedio != 150 {
		t.Fatalf("esperava média 150 (só leituras positivas), veio %f", d.Unidades[0].ConsumoMedio)
	}
}

func TestDescontoTotalZeraValor(t *testing.T) {
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: []float64{5000, 5000}}}

	d := CalcularValoresContrato(unidades, 2.5, 1.0)

	if d.PrecoKwhFinal != 0 {
		t.Fatalf("esperava preço final 0 com desconto de 100%%, veio %f", d.PrecoKwhFinal)
	}
	if d.ValorLocacaoTotal != 0 {
		t.Fatalf("esperava valor de locação 0, veio %d", d.ValorLocacaoTotal)
	}
}

func TestConsumosVaziosNaoQuebram(t *testing.T) {
	unidades := []UnidadeConsumo{{Nome: "U1", Consumos: nil}}

	d := CalcularValoresContrato(unidades, 1.0, 0.10)

	if d.Unidades[0].ConsumoMedio != 0 || d.Unidades[0].PossuiLeituras {
		t.Fatalf("esperava média 0 sem leituras, veio %+v", d.Unidades[0])
	}
}

func TestSomaMediasDeVariasUnidades(t *testing.T) {
	unidades := []UnidadeConsumo{
		{Nome: "U1", Consumos: []float64{100, 300}}, // média 200
		{Nome: "U2", Consumos: []float64{400}},      // média 400
		{Nome: "U3", Consumos: []float64{0}},        // média 0
	}

	d := CalcularValoresContrato(unidades, 1.0, 0)

	if d.ConsumoMedioTotal != 600 {
		t.Fatalf("esperava total 600, veio %f", d.ConsumoMedioTotal)
	}
	if d.TotalPlacas != 9 { // 600/66 = 9.09
		t.Fatalf("esperava 9 placas, veio %d", d.TotalPlacas)
	}
}
