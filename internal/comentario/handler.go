package comentario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rentaldorata/api-backoffice/internal/auth"
	"github.com/rentaldorata/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo handler de comentários.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type criarComentarioDTO struct {
	Texto   string `json:"texto"`
	Sistema bool   `json:"sistema,omitempty"`
}

// Criar trata POST /indicacoes/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	indicacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || indicacaoID <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID de indicação inválido")
		return
	}

	var dto criarComentarioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if dto.Texto == "" {
		utils.ResponderCamposInvalidos(w, map[string]string{"texto": "texto é obrigatório"})
		return
	}

	var autorID uint
	if !dto.Sistema {
		ator, ok := auth.AtorDoContexto(r.Context())
		if !ok {
			utils.ResponderErro(w, http.StatusUnauthorized, "Não autenticado")
			return
		}
		autorID = ator.ID
	}

	c := Comentario{
		Texto:       dto.Texto,
		IndicacaoID: uint(indicacaoID),
		AutorID:     autorID,
		Sistema:     dto.Sistema,
	}
	if err := h.Repository.Criar(h.DB.WithContext(r.Context()), &c); err != nil {
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao criar comentário")
		return
	}
	utils.ResponderDados(w, http.StatusCreated, c)
}

// ListarPorIndicacao trata GET /indicacoes/{id}/comentarios
func (h *Handler) ListarPorIndicacao(w http.ResponseWriter, r *http.Request) {
	indicacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || indicacaoID <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID de indicação inválido")
		return
	}
	lista, err := h.Repository.ListarPorIndicacao(h.DB.WithContext(r.Context()), uint(indicacaoID))
	if err != nil {
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao listar comentários")
		return
	}
	utils.ResponderDados(w, http.StatusOK, lista)
}

// Atualizar trata PUT /comentarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var dto criarComentarioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if dto.Texto == "" {
		utils.ResponderCamposInvalidos(w, map[string]string{"texto": "texto é obrigatório"})
		return
	}
	if err := h.Repository.Atualizar(h.DB.WithContext(r.Context()), uint(id), dto.Texto); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ResponderErro(w, http.StatusNotFound, "Comentário não encontrado")
			return
		}
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao atualizar comentário")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), uint(id))
	if err != nil {
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao recarregar comentário")
		return
	}
	utils.ResponderDados(w, http.StatusOK, c)
}

// Remover trata DELETE /comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := h.Repository.Remover(h.DB.WithContext(r.Context()), uint(id)); err != nil {
		utils.ResponderErro(w, http.StatusInternalServerError, "Erro ao excluir comentário")
		return
	}
	utils.ResponderDados(w, http.StatusOK, map[string]int{"id": id})
}
