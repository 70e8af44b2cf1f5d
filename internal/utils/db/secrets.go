package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rentaldorata/api-backoffice/internal/config"
)

type credenciaisBanco struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// credenciais resolve usuário e senha do banco: ambiente primeiro, Secrets
// Manager como fallback quando há secret_id configurado.
func credenciais(cfg config.BancoConfig) (string, string, error) {
	if cfg.Usuario != "" && cfg.Senha != "" {
		return cfg.Usuario, cfg.Senha, nil
	}
	if cfg.SecretID == "" {
		return "", "", fmt.Errorf("credenciais do banco ausentes: informe banco.usuario/banco.senha ou banco.secret_id")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", "", fmt.Errorf("carregar configuração aws: %w", err)
	}
	cliente := secretsmanager.NewFromConfig(awsCfg)

	saida, err := cliente.GetSecretValue(context.TODO(), &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("buscar segredo %s: %w", cfg.SecretID, err)
	}

	var cred credenciaisBanco
	if err := json.Unmarshal([]byte(*saida.SecretString), &cred); err != nil {
		return "", "", fmt.Errorf("decodificar segredo %s: %w", cfg.SecretID, err)
	}
	return cred.Username, cred.Password, nil
}
