package calculo

// Cálculo dos valores financeiros de um contrato de locação de usina solar.
// Função pura: nenhuma E/S, nenhum efeito colateral. A validação de entrada
// (preço positivo, desconto entre 0 e 1, ao menos uma unidade) é
// responsabilidade do chamador.

// KwhPorPlacaMes é a geração média mensal de uma placa: potência nominal de
// 120 kWh com derate de 0,55. Constante de domínio, não alterar.
const KwhPorPlacaMes = 66.0

// UnidadeConsumo é uma instalação medida (UC) informada no formulário de
// criação do contrato.
type UnidadeConsumo struct {
	Nome     string    `json:"nome"`
	Consumos []float64 `json:"consumos"` // kWh por mês faturado; <= 0 significa "mês sem leitura"
}

// MediaUnidade é o consumo médio apurado de uma unidade.
// PossuiLeituras distingue média zero real de unidade sem nenhuma leitura
// válida; o chamador não deve confundir os dois casos.
type MediaUnidade struct {
	Nome           string    `json:"nome"`
	Consumos       []float64 `json:"consumos"`
	ConsumoMedio   float64   `json:"consumoMedio"`
	PossuiLeituras bool      `json:"possuiLeituras"`
}

// DadosCalculo é o resumo financeiro congelado no contrato no momento da
// criação. Nunca é recalculado depois; aditivos exigem contrato novo.
type DadosCalculo struct {
	Unidades           []MediaUnidade `json:"unidades"`
	ConsumoMedioTotal  float64        `json:"consumoMedioTotal"`
	PrecoKwh           float64        `json:"precoKwh"`
	PercentualDesconto float64        `json:"percentualDesconto"` // fração, 0 a 1
	PrecoKwhFinal      float64        `json:"precoKwhFinal"`
	ValorLocacaoTotal  int            `json:"valorLocacaoTotal"`
	TotalPlacas        int            `json:"totalPlacas"`
}

// CalcularValoresContrato apura as médias de consumo e os valores do
// contrato. Leituras <= 0 ficam fora da média (mês ainda não faturado); o
// divisor nunca é menor que 1, então uma unidade sem leitura válida resulta
// em média 0 com PossuiLeituras=false, nunca em divisão por zero.
//
// Valor de locação e total de placas são truncados, nunca arredondados:
// 455,58 vira 455.
func CalcularValoresContrato(unidades []UnidadeConsumo, precoKwh, percentualDesconto float64) DadosCalculo {
	medias := make([]MediaUnidade, 0, len(unidades))
	var consumoMedioTotal float64

	for _, u := range unidades {
		var soma float64
		var validas int
		for _, c := range u.Consumos {
			if c > 0 {
				soma += c
				validas++
			}
		}
		divisor := validas
		if divisor < 1 {
			divisor = 1
		}
		media := soma / float64(divisor)
		medias = append(medias, MediaUnidade{
			Nome:           u.Nome,
			Consumos:       u.Consumos,
			ConsumoMedio:   media,
			PossuiLeituras: validas > 0,
		})
		consumoMedioTotal += media
	}

	precoKwhFinal := precoKwh * (1 - percentualDesconto)

	return DadosCalculo{
		Unidades:           medias,
		ConsumoMedioTotal:  consumoMedioTotal,
		PrecoKwh:           precoKwh,
		PercentualDesconto: percentualDesconto,
		PrecoKwhFinal:      precoKwhFinal,
		ValorLocacaoTotal:  int(consumoMedioTotal * precoKwhFinal),
		TotalPlacas:        int(consumoMedioTotal / KwhPorPlacaMes),
	}
}
