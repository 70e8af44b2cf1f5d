package contrato

import (
	"strings"
	"time"

	"github.com/rentaldorata/api-backoffice/internal/calculo"
	"gorm.io/gorm"
)

// Tipos de contrato: combinação marca × tipo de pessoa.
const (
	TipoRentalPF = "RENTAL_PF"
	TipoRentalPJ = "RENTAL_PJ"
	TipoDorataPF = "DORATA_PF"
	TipoDorataPJ = "DORATA_PJ"
)

const (
	MarcaRental = "RENTAL"
	MarcaDorata = "DORATA"
)

// ValidadeAposAprovacao é o prazo de vigência da proposta contado a partir
// da aprovação.
const ValidadeAposAprovacao = 120 * 24 * time.Hour

// DadosCliente é um retrato livre dos dados do cliente no momento da
// geração do contrato; não é normalizado de propósito.
type DadosCliente struct {
	Nome      string `json:"nome"`
	Documento string `json:"documento"` // CPF ou CNPJ
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	Endereco  string `json:"endereco"`
}

// Contrato é o documento legal gerado para o cliente. DadosCalculo é
// congelado na criação; ConteudoHTML é mutável enquanto DRAFT e congelado
// na aprovação, quando DocxURL, AprovadoPor e ExpiraEm são preenchidos.
type Contrato struct {
	gorm.Model

	Tipo   string `gorm:"size:20;not null;index" json:"tipo"`
	Marca  string `gorm:"size:20;not null;index" json:"marca"`
	Status Status `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`

	// Indicação de origem, quando o contrato nasceu de um lead.
	IndicacaoID *uint `gorm:"index" json:"indicacaoId,omitempty"`

	DadosCliente DadosCliente         `gorm:"type:jsonb;serializer:json" json:"dadosCliente"`
	DadosCalculo calculo.DadosCalculo `gorm:"type:jsonb;serializer:json" json:"dadosCalculo"`

	ConteudoHTML string `gorm:"type:text" json:"conteudoHtml"`
	DocxURL      string `json:"docxUrl,omitempty"`

	Versao      int        `gorm:"not null;default:1" json:"versao"`
	CriadoPor   uint       `gorm:"not null" json:"criadoPor"`
	AprovadoPor *uint      `json:"aprovadoPor,omitempty"`
	ExpiraEm    *time.Time `json:"expiraEm,omitempty"`

	Unidades []Unidade `gorm:"foreignKey:ContratoID;constraint:OnDelete:CASCADE" json:"unidades"`
}

// Unidade é a linha persistida de uma UC do contrato, com a média de
// consumo congelada no momento do cálculo.
type Unidade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ContratoID     uint      `gorm:"not null;index" json:"contratoId"`
	Nome           string    `gorm:"size:100;not null" json:"nome"`
	Consumos       []float64 `gorm:"type:jsonb;serializer:json" json:"consumos"`
	ConsumoMedio   float64   `gorm:"not null;default:0" json:"consumoMedio"`
	PossuiLeituras bool      `gorm:"not null;default:false" json:"possuiLeituras"`
}

// TableName fixa o nome da tabela de unidades.
func (Unidade) TableName() string {
	return "contrato_unidades"
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contrato{}, &Unidade{})
}

// ModeloDocumento devolve o identificador do modelo de documento do tipo
// de contrato (ex.: RENTAL_PF -> rental_pf).
func ModeloDocumento(tipo string) string {
	return strings.ToLower(tipo)
}
