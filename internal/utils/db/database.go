package db

import (
	"fmt"

	"github.com/rentaldorata/api-backoffice/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão com o Postgres a partir da configuração. As
// credenciais vêm do ambiente ou, na ausência, do Secrets Manager.
func Conectar(cfg config.BancoConfig) (*gorm.DB, error) {
	var sslMode string
	if cfg.SSLDesabilitado {
		sslMode = " sslmode=disable"
	}
	usuario, senha, err := credenciais(cfg)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, usuario, senha, cfg.Nome, cfg.Porta, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
