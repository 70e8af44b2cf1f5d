// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config reúne toda a configuração da aplicação.
type Config struct {
	Servidor      ServidorConfig      `mapstructure:"servidor"`
	Banco         BancoConfig         `mapstructure:"banco"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Armazenamento ArmazenamentoConfig `mapstructure:"armazenamento"`
	Notificacao   NotificacaoConfig   `mapstructure:"notificacao"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServidorConfig define o servidor HTTP.
type ServidorConfig struct {
	Porta        int           `mapstructure:"porta"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// BancoConfig define a conexão com o Postgres. Usuário e senha podem vir
// daqui (env) ou do Secrets Manager via SecretID.
type BancoConfig struct {
	Host            string `mapstructure:"host"`
	Porta           uint   `mapstructure:"porta"`
	Nome            string `mapstructure:"nome"`
	Usuario         string `mapstructure:"usuario"`
	Senha           string `mapstructure:"senha"`
	SecretID        string `mapstructure:"secret_id"`
	SSLDesabilitado bool   `mapstructure:"ssl_desabilitado"`
}

// AuthConfig carrega o segredo de validação dos tokens emitidos pelo
// serviço de autenticação.
type AuthConfig struct {
	Segredo string `mapstructure:"segredo"`
}

// ArmazenamentoConfig define o bucket de documentos.
type ArmazenamentoConfig struct {
	Bucket  string `mapstructure:"bucket"`
	Regiao  string `mapstructure:"regiao"`
	BaseURL string `mapstructure:"base_url"`
}

// NotificacaoConfig define o webhook de alertas operacionais.
type NotificacaoConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// CORSConfig define as origens liberadas.
type CORSConfig struct {
	Origens []string `mapstructure:"origens"`
}

// LogConfig define o nível de log.
type LogConfig struct {
	Nivel string `mapstructure:"nivel"`
}

// Carregar lê config.yaml (se existir) e variáveis de ambiente; env
// sobrepõe arquivo (banco.host -> BANCO_HOST).
func Carregar(caminho string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(caminho)
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("servidor.porta", 8080)
	viper.SetDefault("servidor.read_timeout", 15*time.Second)
	viper.SetDefault("servidor.write_timeout", 30*time.Second)
	viper.SetDefault("servidor.idle_timeout", 60*time.Second)
	viper.SetDefault("banco.host", "localhost")
	viper.SetDefault("banco.porta", 5432)
	viper.SetDefault("banco.nome", "backoffice")
	viper.SetDefault("armazenamento.bucket", "documents")
	viper.SetDefault("armazenamento.regiao", "sa-east-1")
	viper.SetDefault("cors.origens", []string{"*"})
	viper.SetDefault("log.nivel", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("ler arquivo de configuração: %w", err)
		}
		// Sem arquivo: segue com defaults e ambiente.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decodificar configuração: %w", err)
	}

	if cfg.Auth.Segredo == "" {
		return nil, fmt.Errorf("auth.segredo (AUTH_SEGREDO) é obrigatório")
	}
	if cfg.Armazenamento.Bucket == "" {
		return nil, fmt.Errorf("armazenamento.bucket é obrigatório")
	}

	return &cfg, nil
}
