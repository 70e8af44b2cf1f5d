package contrato

// Status é o ciclo de vida do contrato. Os valores são os gravados no banco
// e expostos na API.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusApproved Status = "APPROVED"
	StatusExpired  Status = "EXPIRED"
)

// APPROVED é terminal para a aplicação; EXPIRED só é atingido pela rotina
// externa de expiração.
var transicoes = map[Status][]Status{
	StatusDraft:    {StatusApproved},
	StatusApproved: {StatusExpired},
	StatusExpired:  {},
}

// Valido informa se o valor é um status conhecido.
func (s Status) Valido() bool {
	_, ok := transicoes[s]
	return ok
}

// PodeTransicionar informa se a mudança de estado é permitida.
func (s Status) PodeTransicionar(para Status) bool {
	for _, p := range transicoes[s] {
		if p == para {
			return true
		}
	}
	return false
}

// Editavel informa se o conteúdo HTML do contrato ainda pode ser alterado.
func (s Status) Editavel() bool {
	return s == StatusDraft
}
