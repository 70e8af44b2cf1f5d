// Package armazenamento guarda os artefatos de contrato aprovados no
// bucket de documentos.
package armazenamento

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 envia artefatos para um bucket. PutObject sobrescreve a chave se já
// existir; reaprovar um contrato reutiliza a mesma chave sem acumular
// lixo.
type S3 struct {
	cliente *s3.Client
	bucket  string
	baseURL string
}

// NovoS3 monta o cliente com a cadeia padrão de credenciais da AWS.
// baseURL vazio cai na URL pública padrão do bucket.
func NovoS3(ctx context.Context, bucket, regiao, baseURL string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(regiao))
	if err != nil {
		return nil, fmt.Errorf("carregar configuração aws: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, regiao)
	}
	return &S3{
		cliente: s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Enviar grava o conteúdo na chave e devolve a URL durável do objeto.
func (a *S3) Enviar(ctx context.Context, chave string, conteudo []byte, contentType string) (string, error) {
	_, err := a.cliente.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(chave),
		Body:        bytes.NewReader(conteudo),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("enviar %s: %w", chave, err)
	}
	return a.baseURL + "/" + chave, nil
}
