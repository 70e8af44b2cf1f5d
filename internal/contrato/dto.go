// internal/contrato/dto.go
package contrato

import "strings"

// UnidadeDTO é uma UC informada no formulário de criação.
type UnidadeDTO struct {
	Nome     string    `json:"nome"`
	Consumos []float64 `json:"consumos"`
}

// CriarContratoDTO é o payload de criação vindo do back-office.
// PercentualDesconto chega como valor de tela (0 a 100) e é dividido por
// 100 antes do cálculo.
type CriarContratoDTO struct {
	Tipo               string       `json:"tipo"`
	Marca              string       `json:"marca"`
	NomeCliente        string       `json:"nomeCliente"`
	DocumentoCliente   string       `json:"documentoCliente"`
	EmailCliente       string       `json:"emailCliente"`
	TelefoneCliente    string       `json:"telefoneCliente"`
	EnderecoCliente    string       `json:"enderecoCliente"`
	PrecoKwh           float64      `json:"precoKwh"`
	PercentualDesconto float64      `json:"percentualDesconto"`
	IndicacaoID        *uint        `json:"indicacaoId,omitempty"`
	Unidades           []UnidadeDTO `json:"unidades"`
}

// SalvarRascunhoDTO é o payload de edição do rascunho. Versao é comparada
// com a versão corrente do contrato (controle otimista de concorrência).
type SalvarRascunhoDTO struct {
	Versao       int    `json:"versao"`
	ConteudoHTML string `json:"conteudoHtml"`
}

// AprovarDTO carrega o HTML final que será convertido em documento.
type AprovarDTO struct {
	ConteudoHTML string `json:"conteudoHtml"`
}

var tiposValidos = map[string]bool{
	TipoRentalPF: true,
	TipoRentalPJ: true,
	TipoDorataPF: true,
	TipoDorataPJ: true,
}

var marcasValidas = map[string]bool{
	MarcaRental: true,
	MarcaDorata: true,
}

// Validar devolve um mapa campo -> mensagem; mapa vazio significa payload
// válido. Nenhuma validação acontece depois daqui: o cálculo confia nestas
// faixas.
func (d *CriarContratoDTO) Validar() map[string]string {
	campos := map[string]string{}

	if !tiposValidos[d.Tipo] {
		campos["tipo"] = "tipo de contrato inválido"
	}
	if !marcasValidas[d.Marca] {
		campos["marca"] = "marca inválida"
	}
	if campos["tipo"] == "" && campos["marca"] == "" && !strings.HasPrefix(d.Tipo, d.Marca+"_") {
		campos["tipo"] = "tipo de contrato não pertence à marca informada"
	}
	if strings.TrimSpace(d.NomeCliente) == "" {
		campos["nomeCliente"] = "nome do cliente é obrigatório"
	}
	if strings.TrimSpace(d.DocumentoCliente) == "" {
		campos["documentoCliente"] = "documento do cliente é obrigatório"
	}
	if d.PrecoKwh <= 0 {
		campos["precoKwh"] = "preço do kWh deve ser maior que zero"
	}
	if d.PercentualDesconto < 0 || d.PercentualDesconto > 100 {
		campos["percentualDesconto"] = "desconto deve estar entre 0 e 100"
	}
	if len(d.Unidades) == 0 {
		campos["unidades"] = "informe ao menos uma unidade consumidora"
	}
	for _, u := range d.Unidades {
		if strings.TrimSpace(u.Nome) == "" {
			campos["unidades"] = "toda unidade precisa de nome"
			break
		}
	}

	return campos
}
