package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notificador envia alertas operacionais para o webhook do back-office.
// Falha de entrega é logada e descartada: alerta não bloqueia operação.
type Notificador struct {
	url     string
	cliente *http.Client
	logger  *zap.Logger
}

// NovoNotificador cria o notificador; URL vazia desativa os envios.
func NovoNotificador(url string, logger *zap.Logger) *Notificador {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notificador{
		url:     url,
		cliente: &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// EnviarAlertaDocumentoDuplicado avisa que entrou uma indicação com um
// documento já cadastrado.
func (n *Notificador) EnviarAlertaDocumentoDuplicado(ctx context.Context, documento, marca string) {
	n.enviar(ctx, map[string]string{
		"mensagem":  "Alerta: nova indicação com documento já cadastrado",
		"documento": documento,
		"marca":     marca,
	})
}

func (n *Notificador) enviar(ctx context.Context, payload map[string]string) {
	if n.url == "" {
		return
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(body))
	if err != nil {
		n.logger.Warn("montar requisição de webhook", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.cliente.Do(req)
	if err != nil {
		n.logger.Warn("enviar webhook de alerta", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn("webhook de alerta recusado", zap.Int("status", resp.StatusCode))
	}
}
