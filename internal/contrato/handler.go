package contrato

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rentaldorata/api-backoffice/internal/auth"
	"github.com/rentaldorata/api-backoffice/internal/utils"
	"go.uber.org/zap"
)

// MarcadorConversao marca a indicação de origem como convertida quando um
// contrato nasce dela.
type MarcadorConversao interface {
	MarcarConvertida(ctx context.Context, indicacaoID uint) error
}

// Handler expõe o ciclo de vida do contrato por HTTP.
type Handler struct {
	Service   *Service
	Conversao MarcadorConversao
	Logger    *zap.Logger
}

// NewHandler cria um novo handler de contratos.
func NewHandler(svc *Service, conversao MarcadorConversao, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: svc, Conversao: conversao, Logger: logger}
}

// Criar trata POST /contratos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		utils.ResponderErro(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto CriarContratoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if campos := dto.Validar(); len(campos) > 0 {
		utils.ResponderCamposInvalidos(w, campos)
		return
	}
	// Vendedor só cria contrato da própria marca.
	if !ator.Admin() && dto.Marca != ator.Marca {
		utils.ResponderErro(w, http.StatusForbidden, "Marca não permitida para este usuário")
		return
	}

	c, err := h.Service.Criar(r.Context(), &dto, ator)
	if err != nil {
		h.Logger.Error("falha ao criar contrato", zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Não foi possível gerar o contrato")
		return
	}

	// O contrato já está gravado; falha ao converter a indicação não
	// derruba a resposta.
	if dto.IndicacaoID != nil && h.Conversao != nil {
		if err := h.Conversao.MarcarConvertida(r.Context(), *dto.IndicacaoID); err != nil {
			h.Logger.Warn("falha ao marcar indicação como convertida",
				zap.Uint("indicacaoId", *dto.IndicacaoID), zap.Error(err))
		}
	}

	utils.ResponderDados(w, http.StatusCreated, c)
}

// Listar trata GET /contratos: admin vê tudo (ou filtra por ?marca=),
// vendedor vê só a própria marca.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		utils.ResponderErro(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	marca := strings.ToUpper(r.URL.Query().Get("marca"))
	if !ator.Admin() {
		marca = ator.Marca
	}

	lista, err := h.Service.Listar(r.Context(), marca)
	if err != nil {
		h.Logger.Error("falha ao listar contratos", zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao listar contratos")
		return
	}
	utils.ResponderDados(w, http.StatusOK, lista)
}

// BuscarPorID trata GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	c, err := h.Service.BuscarPorID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrContratoNaoEncontrado) {
			utils.ResponderErro(w, http.StatusNotFound, "Contrato não encontrado")
			return
		}
		h.Logger.Error("falha ao buscar contrato", zap.Uint("contratoId", id), zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao buscar contrato")
		return
	}
	utils.ResponderDados(w, http.StatusOK, c)
}

// SalvarRascunho trata PUT /contratos/{id}/rascunho
func (h *Handler) SalvarRascunho(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var dto SalvarRascunhoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if dto.ConteudoHTML == "" {
		utils.ResponderCamposInvalidos(w, map[string]string{"conteudoHtml": "conteúdo é obrigatório"})
		return
	}

	c, err := h.Service.SalvarRascunho(r.Context(), id, &dto)
	if err != nil {
		h.responderErroCicloDeVida(w, id, err, "Erro ao salvar rascunho")
		return
	}
	utils.ResponderDados(w, http.StatusOK, c)
}

// Aprovar trata POST /contratos/{id}/aprovar (somente admin, garantido na
// rota).
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		utils.ResponderErro(w, http.StatusUnauthorized, "Não autenticado")
		return
	}
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var dto AprovarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if dto.ConteudoHTML == "" {
		utils.ResponderCamposInvalidos(w, map[string]string{"conteudoHtml": "conteúdo final é obrigatório"})
		return
	}

	c, err := h.Service.Aprovar(r.Context(), id, &dto, ator)
	if err != nil {
		h.responderErroCicloDeVida(w, id, err, "Não foi possível aprovar o contrato")
		return
	}
	utils.ResponderDados(w, http.StatusOK, c)
}

// Expirar trata POST /contratos/expirar (somente admin; disparado por um
// agendador externo).
func (h *Handler) Expirar(w http.ResponseWriter, r *http.Request) {
	quantidade, err := h.Service.Expirar(r.Context())
	if err != nil {
		h.Logger.Error("falha ao expirar contratos", zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao expirar contratos")
		return
	}
	utils.ResponderDados(w, http.StatusOK, map[string]int64{"expirados": quantidade})
}

func (h *Handler) responderErroCicloDeVida(w http.ResponseWriter, id uint, err error, generica string) {
	switch {
	case errors.Is(err, ErrContratoNaoEncontrado):
		utils.ResponderErro(w, http.StatusNotFound, "Contrato não encontrado")
	case errors.Is(err, ErrContratoNaoEditavel):
		utils.ResponderErro(w, http.StatusConflict, "Contrato não está mais em rascunho")
	case errors.Is(err, ErrConflitoVersao):
		utils.ResponderErro(w, http.StatusConflict, "Rascunho desatualizado; recarregue e tente de novo")
	default:
		h.Logger.Error(generica, zap.Uint("contratoId", id), zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, generica)
	}
}

func idDaRota(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return uint(id), nil
}
