// internal/contrato/repository.go
package contrato

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de contratos. As operações de
// mutação são atualizações condicionais: devolvem quantas linhas mudaram e
// quem chama decide o que RowsAffected == 0 significa.
type Repository interface {
	Criar(ctx context.Context, c *Contrato) error
	BuscarPorID(ctx context.Context, id uint) (*Contrato, error)
	ListarTodos(ctx context.Context) ([]Contrato, error)
	ListarPorMarca(ctx context.Context, marca string) ([]Contrato, error)
	AtualizarRascunho(ctx context.Context, id uint, versao int, html string) (int64, error)
	Aprovar(ctx context.Context, id uint, html, docxURL string, aprovadoPor uint, expiraEm time.Time) (int64, error)
	ExpirarVencidos(ctx context.Context, agora time.Time) (int64, error)
}

type repositoryGorm struct {
	DB *gorm.DB
}

// NewRepository cria o repositório sobre um *gorm.DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

// Criar persiste o contrato e suas unidades numa única transação: ou tudo
// entra, ou nada entra: sem rascunho órfão sem unidades.
func (r *repositoryGorm) Criar(ctx context.Context, c *Contrato) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(c).Error
	})
}

func (r *repositoryGorm) BuscarPorID(ctx context.Context, id uint) (*Contrato, error) {
	var c Contrato
	err := r.DB.WithContext(ctx).Preload("Unidades").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryGorm) ListarTodos(ctx context.Context) ([]Contrato, error) {
	var contratos []Contrato
	err := r.DB.WithContext(ctx).Preload("Unidades").Order("created_at DESC").Find(&contratos).Error
	return contratos, err
}

func (r *repositoryGorm) ListarPorMarca(ctx context.Context, marca string) ([]Contrato, error) {
	var contratos []Contrato
	err := r.DB.WithContext(ctx).
		Preload("Unidades").
		Where("marca = ?", marca).
		Order("created_at DESC").
		Find(&contratos).Error
	return contratos, err
}

// AtualizarRascunho troca o HTML do rascunho somente se o contrato ainda
// estiver em DRAFT e na versão esperada; a versão é incrementada na mesma
// escrita.
func (r *repositoryGorm) AtualizarRascunho(ctx context.Context, id uint, versao int, html string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&Contrato{}).
		Where("id = ? AND status = ? AND versao = ?", id, StatusDraft, versao).
		Updates(map[string]interface{}{
			"conteudo_html": html,
			"versao":        gorm.Expr("versao + 1"),
		})
	return res.RowsAffected, res.Error
}

// Aprovar é a escrita única e condicional da aprovação: só transiciona um
// contrato que ainda está em DRAFT, o que barra aprovação dupla concorrente.
func (r *repositoryGorm) Aprovar(ctx context.Context, id uint, html, docxURL string, aprovadoPor uint, expiraEm time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&Contrato{}).
		Where("id = ? AND status = ?", id, StatusDraft).
		Updates(map[string]interface{}{
			"status":        StatusApproved,
			"conteudo_html": html,
			"docx_url":      docxURL,
			"aprovado_por":  aprovadoPor,
			"expira_em":     expiraEm,
			"versao":        gorm.Expr("versao + 1"),
		})
	return res.RowsAffected, res.Error
}

// ExpirarVencidos marca como EXPIRED os contratos aprovados cuja vigência
// passou. Chamado pela rotina externa de expiração.
func (r *repositoryGorm) ExpirarVencidos(ctx context.Context, agora time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&Contrato{}).
		Where("status = ? AND expira_em < ?", StatusApproved, agora).
		Update("status", StatusExpired)
	return res.RowsAffected, res.Error
}
