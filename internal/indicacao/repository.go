package indicacao

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, i *Indicacao) error
	BuscarPorID(db *gorm.DB, id uint) (*Indicacao, error)
	ListarTodas(db *gorm.DB, status string) ([]Indicacao, error)
	ListarPorMarca(db *gorm.DB, marca, status string) ([]Indicacao, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Indicacao) error
	AtualizarStatus(db *gorm.DB, id uint, status string) error
	Deletar(db *gorm.DB, id uint) error
	ContarPorDocumento(db *gorm.DB, documento string) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, i *Indicacao) error {
	return db.Create(i).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Indicacao, error) {
	var i Indicacao
	err := db.Preload("Comentarios").First(&i, id).Error
	return &i, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB, status string) ([]Indicacao, error) {
	var indicacoes []Indicacao
	q := db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&indicacoes).Error
	return indicacoes, err
}

func (r *repositoryImpl) ListarPorMarca(db *gorm.DB, marca, status string) ([]Indicacao, error) {
	var indicacoes []Indicacao
	q := db.Where("marca = ?", marca).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&indicacoes).Error
	return indicacoes, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Indicacao) error {
	var existente Indicacao
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Telefone = novosDados.Telefone
	existente.Email = novosDados.Email
	existente.Documento = novosDados.Documento
	existente.UF = novosDados.UF
	existente.ConsumoMedioInformado = novosDados.ConsumoMedioInformado
	existente.Observacoes = novosDados.Observacoes
	existente.Arquivos = novosDados.Arquivos

	return db.Save(&existente).Error
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, status string) error {
	res := db.Model(&Indicacao{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Indicacao{}, id).Error
}

// ContarPorDocumento conta indicações já registradas com o documento; usado
// no alerta de documento duplicado.
func (r *repositoryImpl) ContarPorDocumento(db *gorm.DB, documento string) (int64, error) {
	var total int64
	err := db.Model(&Indicacao{}).Where("documento = ?", documento).Count(&total).Error
	return total, err
}

// Conversao adapta o repositório para o gancho usado pelo módulo de
// contratos: quando um contrato nasce de uma indicação, ela vira
// CONVERTIDA.
type Conversao struct {
	DB         *gorm.DB
	Repository Repository
}

func (c *Conversao) MarcarConvertida(ctx context.Context, indicacaoID uint) error {
	return c.Repository.AtualizarStatus(c.DB.WithContext(ctx), indicacaoID, StatusConvertida)
}
