package indicacao

import (
	"github.com/rentaldorata/api-backoffice/internal/comentario"
	"gorm.io/gorm"
)

// Status do funil de atendimento de uma indicação.
const (
	StatusNova          = "NOVA"
	StatusEmAtendimento = "EM_ATENDIMENTO"
	StatusConvertida    = "CONVERTIDA"
	StatusPerdida       = "PERDIDA"
)

// CONVERTIDA é terminal; uma indicação perdida pode voltar ao atendimento.
var transicoes = map[string][]string{
	StatusNova:          {StatusEmAtendimento, StatusPerdida},
	StatusEmAtendimento: {StatusConvertida, StatusPerdida},
	StatusConvertida:    {},
	StatusPerdida:       {StatusEmAtendimento},
}

// StatusValido informa se o valor é um status conhecido do funil.
func StatusValido(s string) bool {
	_, ok := transicoes[s]
	return ok
}

// PodeTransicionar informa se a mudança de status é permitida.
func PodeTransicionar(de, para string) bool {
	for _, p := range transicoes[de] {
		if p == para {
			return true
		}
	}
	return false
}

// Indicacao é um lead de venda: o registro semente do qual um contrato
// pode nascer.
type Indicacao struct {
	gorm.Model
	Nome      string `gorm:"size:150;not null" json:"nome"`
	Telefone  string `gorm:"size:30" json:"telefone"`
	Email     string `gorm:"size:150" json:"email"`
	Documento string `gorm:"size:20;index" json:"documento"` // CPF ou CNPJ
	UF        string `gorm:"size:2" json:"uf"`

	Marca  string `gorm:"size:20;not null;index" json:"marca"`
	Status string `gorm:"size:30;not null;default:'NOVA';index" json:"status"`

	// Consumo informado pelo indicador, antes de qualquer fatura anexada.
	ConsumoMedioInformado float64 `json:"consumoMedioInformado"`
	Observacoes           string  `gorm:"type:text" json:"observacoes"`

	// Anexos (faturas, documentos) em JSONB.
	Arquivos []string `gorm:"type:jsonb;serializer:json" json:"arquivos"`

	VendedorID uint `gorm:"index" json:"vendedorId"`

	Comentarios []comentario.Comentario `gorm:"foreignKey:IndicacaoID" json:"comentarios"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Indicacao{})
}
