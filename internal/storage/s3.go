package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"fleet_vendor/internal/config"
)

// Uploader stores a document file and returns a durable URL. Callers treat
// a failed upload as "no file": the document record is still created with
// an empty URL rather than aborting the whole entity.
type Uploader interface {
	Upload(ctx context.Context, name string, content io.Reader, contentType string) (string, error)
}

// Config holds the S3 (or MinIO) connection settings.
type Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ConfigFromEnv reads the S3 settings the same way the DB bootstrap does.
func ConfigFromEnv() Config {
	return Config{
		Bucket:       config.GetEnv("S3_BUCKET", "fleet-documents"),
		Region:       config.GetEnv("S3_REGION", "us-east-1"),
		Endpoint:     config.GetEnv("S3_ENDPOINT", ""),
		AccessKey:    config.GetEnv("S3_ACCESS_KEY", ""),
		SecretKey:    config.GetEnv("S3_SECRET_KEY", ""),
		UsePathStyle: config.GetEnv("S3_PATH_STYLE", "") == "true",
	}
}

// S3Storage uploads vendor fleet documents to an S3 bucket.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		// Static credentials (MinIO or AWS with explicit keys)
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		// Default credential chain (IAM roles, env vars, etc.)
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, cfg: cfg}, nil
}

// Upload stores the content under a salted key and returns its URL.
func (s *S3Storage) Upload(ctx context.Context, name string, content io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("documents/%s-%s", uuid.NewString(), name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.Endpoint, s.cfg.Bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}
