// internal/contrato/service.go
package contrato

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentaldorata/api-backoffice/internal/auth"
	"github.com/rentaldorata/api-backoffice/internal/calculo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrContratoNaoEncontrado = errors.New("contrato não encontrado")
	ErrContratoNaoEditavel   = errors.New("contrato não está mais em rascunho")
	ErrConflitoVersao        = errors.New("rascunho foi alterado por outra pessoa; recarregue e tente de novo")
)

// Renderizador produz o HTML inicial do contrato a partir de um modelo de
// documento e um mapa de campos.
type Renderizador interface {
	Renderizar(modelo string, campos map[string]string) (string, error)
}

// Conversor transforma o HTML final em um documento binário (.docx).
type Conversor interface {
	Converter(html string) ([]byte, error)
	ContentType() string
}

// Armazenamento guarda o artefato aprovado e devolve uma URL durável.
// Enviar sobrescreve a chave se já existir.
type Armazenamento interface {
	Enviar(ctx context.Context, chave string, conteudo []byte, contentType string) (string, error)
}

// Service orquestra o ciclo de vida do contrato: criação do rascunho,
// edição e aprovação. O ator vem sempre como parâmetro explícito; nada de
// buscar sessão dentro das operações.
type Service struct {
	repo          Repository
	renderizador  Renderizador
	conversor     Conversor
	armazenamento Armazenamento
	logger        *zap.Logger
	agora         func() time.Time
}

// NewService monta o serviço com seus colaboradores.
func NewService(repo Repository, rend Renderizador, conv Conversor, arm Armazenamento, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:          repo,
		renderizador:  rend,
		conversor:     conv,
		armazenamento: arm,
		logger:        logger,
		agora:         time.Now,
	}
}

// Criar valida o payload, roda o cálculo, renderiza o modelo e persiste o
// contrato em DRAFT junto com as unidades. Falha na renderização aborta
// tudo: nada é gravado.
func (s *Service) Criar(ctx context.Context, dto *CriarContratoDTO, ator auth.Ator) (*Contrato, error) {
	unidades := make([]calculo.UnidadeConsumo, 0, len(dto.Unidades))
	for _, u := range dto.Unidades {
		unidades = append(unidades, calculo.UnidadeConsumo{Nome: u.Nome, Consumos: u.Consumos})
	}

	// Desconto chega da tela em 0–100.
	dados := calculo.CalcularValoresContrato(unidades, dto.PrecoKwh, dto.PercentualDesconto/100)

	cliente := DadosCliente{
		Nome:      dto.NomeCliente,
		Documento: dto.DocumentoCliente,
		Email:     dto.EmailCliente,
		Telefone:  dto.TelefoneCliente,
		Endereco:  dto.EnderecoCliente,
	}

	html, err := s.renderizador.Renderizar(ModeloDocumento(dto.Tipo), montarCampos(cliente, dados))
	if err != nil {
		return nil, fmt.Errorf("renderizar modelo do contrato: %w", err)
	}

	c := &Contrato{
		Tipo:         dto.Tipo,
		Marca:        dto.Marca,
		Status:       StatusDraft,
		IndicacaoID:  dto.IndicacaoID,
		DadosCliente: cliente,
		DadosCalculo: dados,
		ConteudoHTML: html,
		Versao:       1,
		CriadoPor:    ator.ID,
	}
	for _, m := range dados.Unidades {
		c.Unidades = append(c.Unidades, Unidade{
			Nome:           m.Nome,
			Consumos:       m.Consumos,
			ConsumoMedio:   m.ConsumoMedio,
			PossuiLeituras: m.PossuiLeituras,
		})
	}

	if err := s.repo.Criar(ctx, c); err != nil {
		return nil, fmt.Errorf("gravar contrato: %w", err)
	}

	s.logger.Info("contrato criado",
		zap.Uint("contratoId", c.ID),
		zap.String("tipo", c.Tipo),
		zap.Uint("criadoPor", ator.ID),
		zap.Int("valorLocacao", dados.ValorLocacaoTotal))

	return c, nil
}

// SalvarRascunho substitui o HTML do rascunho. Não recalcula DadosCalculo.
// A escrita é condicionada a status DRAFT e à versão esperada; se nada
// mudou, o motivo é apurado e devolvido como erro específico.
func (s *Service) SalvarRascunho(ctx context.Context, id uint, dto *SalvarRascunhoDTO) (*Contrato, error) {
	linhas, err := s.repo.AtualizarRascunho(ctx, id, dto.Versao, dto.ConteudoHTML)
	if err != nil {
		return nil, fmt.Errorf("salvar rascunho: %w", err)
	}
	if linhas == 0 {
		return nil, s.motivoEscritaRecusada(ctx, id)
	}
	return s.repo.BuscarPorID(ctx, id)
}

// Aprovar converte o HTML final em .docx, envia ao armazenamento e então
// faz a escrita única e condicional no banco. A ordem importa: falha antes
// da escrita final não muda estado nenhum; falha na escrita final deixa o
// contrato em DRAFT com um artefato órfão no bucket, rastreável pela chave
// de tentativa logada.
func (s *Service) Aprovar(ctx context.Context, id uint, dto *AprovarDTO, ator auth.Ator) (*Contrato, error) {
	c, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContratoNaoEncontrado
		}
		return nil, fmt.Errorf("buscar contrato: %w", err)
	}
	if !c.Status.PodeTransicionar(StatusApproved) {
		return nil, ErrContratoNaoEditavel
	}

	tentativa := uuid.NewString()
	s.logger.Info("iniciando aprovação",
		zap.Uint("contratoId", id),
		zap.String("tentativa", tentativa),
		zap.Uint("aprovadoPor", ator.ID))

	binario, err := s.conversor.Converter(dto.ConteudoHTML)
	if err != nil {
		return nil, fmt.Errorf("converter documento: %w", err)
	}

	chave := fmt.Sprintf("contracts/%d_final.docx", id)
	url, err := s.armazenamento.Enviar(ctx, chave, binario, s.conversor.ContentType())
	if err != nil {
		return nil, fmt.Errorf("enviar documento ao armazenamento: %w", err)
	}

	expiraEm := s.agora().Add(ValidadeAposAprovacao)
	linhas, err := s.repo.Aprovar(ctx, id, dto.ConteudoHTML, url, ator.ID, expiraEm)
	if err != nil {
		// O artefato já está no bucket mas o contrato segue DRAFT.
		// Reaprovar é seguro: o envio sobrescreve a mesma chave.
		s.logger.Warn("escrita final da aprovação falhou; artefato órfão no bucket",
			zap.Uint("contratoId", id),
			zap.String("chave", chave),
			zap.String("tentativa", tentativa),
			zap.Error(err))
		return nil, fmt.Errorf("registrar aprovação: %w", err)
	}
	if linhas == 0 {
		return nil, ErrContratoNaoEditavel
	}

	s.logger.Info("contrato aprovado",
		zap.Uint("contratoId", id),
		zap.String("docxUrl", url),
		zap.Time("expiraEm", expiraEm))

	return s.repo.BuscarPorID(ctx, id)
}

// Expirar marca como EXPIRED os contratos aprovados vencidos. Pensado para
// ser disparado por um agendador externo.
func (s *Service) Expirar(ctx context.Context) (int64, error) {
	linhas, err := s.repo.ExpirarVencidos(ctx, s.agora())
	if err != nil {
		return 0, fmt.Errorf("expirar contratos: %w", err)
	}
	if linhas > 0 {
		s.logger.Info("contratos expirados", zap.Int64("quantidade", linhas))
	}
	return linhas, nil
}

// BuscarPorID expõe a consulta para os handlers.
func (s *Service) BuscarPorID(ctx context.Context, id uint) (*Contrato, error) {
	c, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContratoNaoEncontrado
		}
		return nil, err
	}
	return c, nil
}

// Listar devolve os contratos da marca, ou todos quando marca é vazia.
func (s *Service) Listar(ctx context.Context, marca string) ([]Contrato, error) {
	if marca == "" {
		return s.repo.ListarTodos(ctx)
	}
	return s.repo.ListarPorMarca(ctx, marca)
}

// motivoEscritaRecusada descobre por que uma escrita condicional não pegou
// nenhuma linha: contrato inexistente, não editável ou versão defasada.
func (s *Service) motivoEscritaRecusada(ctx context.Context, id uint) error {
	c, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContratoNaoEncontrado
		}
		return err
	}
	if !c.Status.Editavel() {
		return ErrContratoNaoEditavel
	}
	return ErrConflitoVersao
}

// montarCampos mapeia os dados do cliente e do cálculo para os campos dos
// modelos de documento.
func montarCampos(cliente DadosCliente, dados calculo.DadosCalculo) map[string]string {
	nomes := make([]string, 0, len(dados.Unidades))
	for _, u := range dados.Unidades {
		nomes = append(nomes, u.Nome)
	}
	return map[string]string{
		"NomeCliente":        cliente.Nome,
		"DocumentoCliente":   cliente.Documento,
		"EmailCliente":       cliente.Email,
		"TelefoneCliente":    cliente.Telefone,
		"EnderecoCliente":    cliente.Endereco,
		"ConsumoMedioTotal":  formatarDecimal(dados.ConsumoMedioTotal),
		"PrecoKwh":           formatarDecimal(dados.PrecoKwh),
		"PrecoKwhFinal":      formatarDecimal(dados.PrecoKwhFinal),
		"PercentualDesconto": formatarDecimal(dados.PercentualDesconto * 100),
		"ValorLocacao":       strconv.Itoa(dados.ValorLocacaoTotal),
		"TotalPlacas":        strconv.Itoa(dados.TotalPlacas),
		"Unidades":           strings.Join(nomes, ", "),
	}
}

// formatarDecimal imprime com duas casas e vírgula decimal, padrão dos
// documentos.
func formatarDecimal(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}
