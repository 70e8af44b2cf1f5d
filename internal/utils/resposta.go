package utils

import (
	"encoding/json"
	"net/http"
)

// Resposta é o envelope padrão da API. O front nunca recebe erro cru:
// qualquer falha vira sucesso=false com uma mensagem apresentável.
type Resposta struct {
	Sucesso  bool              `json:"sucesso"`
	Mensagem string            `json:"mensagem,omitempty"`
	Campos   map[string]string `json:"campos,omitempty"`
	Dados    interface{}       `json:"dados,omitempty"`
}

// ResponderDados escreve uma resposta de sucesso com o payload informado.
func ResponderDados(w http.ResponseWriter, status int, dados interface{}) {
	escrever(w, status, Resposta{Sucesso: true, Dados: dados})
}

// ResponderErro escreve uma resposta de falha com a mensagem informada.
func ResponderErro(w http.ResponseWriter, status int, mensagem string) {
	escrever(w, status, Resposta{Sucesso: false, Mensagem: mensagem})
}

// ResponderCamposInvalidos escreve a falha de validação com o mapa
// campo -> mensagem.
func ResponderCamposInvalidos(w http.ResponseWriter, campos map[string]string) {
	escrever(w, http.StatusUnprocessableEntity, Resposta{
		Sucesso:  false,
		Mensagem: "dados inválidos",
		Campos:   campos,
	})
}

func escrever(w http.ResponseWriter, status int, r Resposta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(r)
}
