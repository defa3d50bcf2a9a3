package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/Inventario-print/pkg/config"
)

// S3Archive sube los PDF a un bucket S3 o compatible (MinIO).
type S3Archive struct {
	client *s3.Client
	bucket string
}

// NewS3Archive crea el cliente. Sin claves estáticas se usa la cadena de
// credenciales por defecto del SDK; con Endpoint se fuerza path-style.
func NewS3Archive(ctx context.Context, cfg config.StorageConfig) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("archive: bucket requerido")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive: configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archive{client: client, bucket: cfg.Bucket}, nil
}

// Store sube el PDF y devuelve su URI s3://bucket/key.
func (a *S3Archive) Store(ctx context.Context, key string, pdf []byte) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(pdf),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(pdf))),
	})
	if err != nil {
		return "", fmt.Errorf("archive: subir %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
