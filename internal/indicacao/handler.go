package indicacao

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
	"gorm.io/gorm"
)

// Alertador dispara o aviso operacional de documento duplicado.
type Alertador interface {
	EnviarAlertaDocumentoDuplicado(ctx context.Context, documento, marca string)
}

// Handler encapsula o DB e o Repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Alertas    Alertador
	Logger     *zap.Logger
}

// NewHandler cria um novo handler de indicações.
func NewHandler(db *gorm.DB, alertas Alertador, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{DB: db, Repository: NewRepository(), Alertas: alertas, Logger: logger}
}

type criarIndicacaoDTO struct {
	Nome                  string   `json:"nome"`
	Telefone              string   `json:"telefone"`
	Email                 string   `json:"email"`
	Documento             string   `json:"documento"`
	UF                    string   `json:"uf"`
	Marca                 string   `json:"marca"`
	ConsumoMedioInformado float64  `json:"consumoMedioInformado"`
	Observacoes           string   `json:"observacoes"`
	Arquivos              []string `json:"arquivos"`
}

type atualizarStatusDTO struct {
	Status string `json:"status"`
}

// Criar trata POST /indicacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		utils.ResponderErro(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto criarIndicacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	campos := map[string]string{}
	if strings.TrimSpace(dto.Nome) == "" {
		campos["nome"] = "nome é obrigatório"
	}
	marca := strings.ToUpper(dto.Marca)
	if !ator.Admin() {
		marca = ator.Marca
	}
	if marca == "" {
		campos["marca"] = "marca é obrigatória"
	}
	if len(campos) > 0 {
		utils.ResponderCamposInvalidos(w, campos)
		return
	}

	db := h.DB.WithContext(r.Context())

	// Documento repetido não bloqueia o cadastro, só dispara o alerta.
	if dto.Documento != "" && h.Alertas != nil {
		if total, err := h.Repository.ContarPorDocumento(db, dto.Documento); err == nil && total > 0 {
			h.Alertas.EnviarAlertaDocumentoDuplicado(r.Context(), dto.Documento, marca)
		}
	}

	i := Indicacao{
		Nome:                  dto.Nome,
		Telefone:              dto.Telefone,
		Email:                 dto.Email,
		Documento:             dto.Documento,
		UF:                    strings.ToUpper(dto.UF),
		Marca:                 marca,
		Status:                StatusNova,
		ConsumoMedioInformado: dto.ConsumoMedioInformado,
		Observacoes:           dto.Observacoes,
		Arquivos:              dto.Arquivos,
		VendedorID:            ator.ID,
	}
	if err := h.Repository.Criar(db, &i); err != nil {
		h.Logger.Error("falha ao criar indicação", zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao criar indicação")
		return
	}
	utils.ResponderDados(w, http.StatusCreated, i)
}

// Listar trata GET /indicacoes: admin vê tudo (ou filtra por ?marca=),
// vendedor vê só a própria marca. ?status= filtra o funil.
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
	status := strings.ToUpper(r.URL.Query().Get("status"))

	db := h.DB.WithContext(r.Context())
	var (
		lista []Indicacao
		err   error
	)
	if marca == "" {
		lista, err = h.Repository.ListarTodas(db, status)
	} else {
		lista, err = h.Repository.ListarPorMarca(db, marca, status)
	}
	if err != nil {
		h.Logger.Error("falha ao listar indicações", zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao listar indicações")
		return
	}
	utils.ResponderDados(w, http.StatusOK, lista)
}

// BuscarPorID trata GET /indicacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	i, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.ResponderErro(w, http.StatusNotFound, "Indicação não encontrada")
		return
	}
	utils.ResponderDados(w, http.StatusOK, i)
}

// Atualizar trata PUT /indicacoes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var dto criarIndicacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	novos := &Indicacao{
		Nome:                  dto.Nome,
		Telefone:              dto.Telefone,
		Email:                 dto.Email,
		Documento:             dto.Documento,
		UF:                    strings.ToUpper(dto.UF),
		ConsumoMedioInformado: dto.ConsumoMedioInformado,
		Observacoes:           dto.Observacoes,
		Arquivos:              dto.Arquivos,
	}
	if err := h.Repository.Atualizar(h.DB.WithContext(r.Context()), id, novos); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ResponderErro(w, http.StatusNotFound, "Indicação não encontrada")
			return
		}
		h.Logger.Error("falha ao atualizar indicação", zap.Uint("indicacaoId", id), zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao atualizar indicação")
		return
	}
	i, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao recarregar indicação")
		return
	}
	utils.ResponderDados(w, http.StatusOK, i)
}

// AtualizarStatus trata PATCH /indicacoes/{id}/status com a transição de
// funil validada.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var dto atualizarStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	novo := strings.ToUpper(strings.TrimSpace(dto.Status))
	if !StatusValido(novo) {
		utils.ResponderCamposInvalidos(w, map[string]string{"status": "status desconhecido"})
		return
	}

	db := h.DB.WithContext(r.Context())
	i, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		utils.ResponderErro(w, http.StatusNotFound, "Indicação não encontrada")
		return
	}
	if !PodeTransicionar(i.Status, novo) {
		utils.ResponderErro(w, http.StatusConflict, "Transição de status não permitida")
		return
	}
	if err := h.Repository.AtualizarStatus(db, id, novo); err != nil {
		h.Logger.Error("falha ao atualizar status da indicação", zap.Uint("indicacaoId", id), zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao atualizar status")
		return
	}
	i.Status = novo
	utils.ResponderDados(w, http.StatusOK, i)
}

// Deletar trata DELETE /indicacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := h.Repository.Deletar(h.DB.WithContext(r.Context()), id); err != nil {
		h.Logger.Error("falha ao excluir indicação", zap.Uint("indicacaoId", id), zap.Error(err))
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao excluir indicação")
		return
	}
	utils.ResponderDados(w, http.StatusOK, map[string]uint{"id": id})
}

func idDaRota(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return uint(id), nil
}
