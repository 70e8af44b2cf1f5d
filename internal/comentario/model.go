package comentario

import "gorm.io/gorm"

// Comentario é uma anotação de atendimento em uma indicação. Comentários
// de sistema (Sistema=true, AutorID=0) registram eventos do funil.
type Comentario struct {
	gorm.Model
	Texto       string `gorm:"type:text;not null" json:"texto"`
	IndicacaoID uint   `gorm:"not null;index" json:"indicacaoId"`
	AutorID     uint   `json:"autorId"`
	Sistema     bool   `json:"sistema"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comentario{})
}
