package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rentaldorata/api-backoffice/internal/armazenamento"
	"github.com/rentaldorata/api-backoffice/internal/auth"
	"github.com/rentaldorata/api-backoffice/internal/comentario"
	"github.com/rentaldorata/api-backoffice/internal/config"
	"github.com/rentaldorata/api-backoffice/internal/contrato"
	"github.com/rentaldorata/api-backoffice/internal/docx"
	"github.com/rentaldorata/api-backoffice/internal/indicacao"
	"github.com/rentaldorata/api-backoffice/internal/modelo"
	"github.com/rentaldorata/api-backoffice/internal/notificacao"
	"github.com/rentaldorata/api-backoffice/internal/utils/db"
)

func main() {
	// .env local; em produção as variáveis já vêm do ambiente.
	_ = godotenv.Load()

	cfg, err := config.Carregar(".")
	if err != nil {
		log.Fatal("Erro ao carregar configuração: ", err)
	}

	logger, err := novoLogger(cfg.Log)
	if err != nil {
		log.Fatal("Erro ao criar logger: ", err)
	}
	defer logger.Sync()

	banco, err := db.Conectar(cfg.Banco)
	if err != nil {
		logger.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := comentario.Migrate(banco); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}
	if err := indicacao.Migrate(banco); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}
	if err := contrato.Migrate(banco); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	// Colaboradores do ciclo de vida do contrato
	renderer, err := modelo.NovoRenderer()
	if err != nil {
		logger.Fatal("Erro ao carregar modelos de documento", zap.Error(err))
	}
	ctx := context.Background()
	s3, err := armazenamento.NovoS3(ctx, cfg.Armazenamento.Bucket, cfg.Armazenamento.Regiao, cfg.Armazenamento.BaseURL)
	if err != nil {
		logger.Fatal("Erro ao configurar armazenamento", zap.Error(err))
	}
	conversor := docx.NovoConversor()
	notificador := notificacao.NovoNotificador(cfg.Notificacao.WebhookURL, logger)

	// Handlers
	contratoRepo := contrato.NewRepository(banco)
	contratoService := contrato.NewService(contratoRepo, renderer, conversor, s3, logger)
	conversao := &indicacao.Conversao{DB: banco, Repository: indicacao.NewRepository()}
	contratoHandler := contrato.NewHandler(contratoService, conversao, logger)
	indicacaoHandler := indicacao.NewHandler(banco, notificador, logger)
	comentarioHandler := comentario.NewHandler(banco)

	// Router
	r := mux.NewRouter()
	r.Use(auth.Middleware(cfg.Auth.Segredo))

	// Rotas de contratos
	r.HandleFunc("/contratos", contratoHandler.Criar).Methods("POST")
	r.HandleFunc("/contratos", contratoHandler.Listar).Methods("GET")
	r.Handle("/contratos/expirar", auth.RequireAdmin(http.HandlerFunc(contratoHandler.Expirar))).Methods("POST")
	r.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/contratos/{id}/rascunho", contratoHandler.SalvarRascunho).Methods("PUT")
	r.Handle("/contratos/{id}/aprovar", auth.RequireAdmin(http.HandlerFunc(contratoHandler.Aprovar))).Methods("POST")

	// Rotas de indicações
	r.HandleFunc("/indicacoes", indicacaoHandler.Criar).Methods("POST")
	r.HandleFunc("/indicacoes", indicacaoHandler.Listar).Methods("GET")
	r.HandleFunc("/indicacoes/{id}", indicacaoHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/indicacoes/{id}", indicacaoHandler.Atualizar).Methods("PUT")
	r.HandleFunc("/indicacoes/{id}/status", indicacaoHandler.AtualizarStatus).Methods("PATCH")
	r.HandleFunc("/indicacoes/{id}", indicacaoHandler.Deletar).Methods("DELETE")

	// Rotas de comentários
	r.HandleFunc("/indicacoes/{id}/comentarios", comentarioHandler.Criar).Methods("POST")
	r.HandleFunc("/indicacoes/{id}/comentarios", comentarioHandler.ListarPorIndicacao).Methods("GET")
	r.HandleFunc("/comentarios/{id}", comentarioHandler.Atualizar).Methods("PUT")
	r.HandleFunc("/comentarios/{id}", comentarioHandler.Remover).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origens,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Servidor.Porta),
		Handler:      c.Handler(r),
		ReadTimeout:  cfg.Servidor.ReadTimeout,
		WriteTimeout: cfg.Servidor.WriteTimeout,
		IdleTimeout:  cfg.Servidor.IdleTimeout,
	}

	logger.Info("servidor ouvindo", zap.Int("porta", cfg.Servidor.Porta))
	logger.Fatal("servidor encerrado", zap.Error(srv.ListenAndServe()))
}

func novoLogger(cfg config.LogConfig) (*zap.Logger, error) {
	nivel, err := zapcore.ParseLevel(cfg.Nivel)
	if err != nil {
		return nil, fmt.Errorf("nível de log inválido %q: %w", cfg.Nivel, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(nivel)
	return zcfg.Build()
}
