// internal/adapter/storage/minio/client.go
package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Config — параметры подключения к MinIO (S3-совместимому хранилищу)
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

// EndpointURL возвращает полный URL эндпоинта с учётом SSL
func (c Config) EndpointURL() string {
	if strings.HasPrefix(c.Endpoint, "http://") || strings.HasPrefix(c.Endpoint, "https://") {
		return strings.TrimRight(c.Endpoint, "/")
	}
	if c.UseSSL {
		return "https://" + c.Endpoint
	}
	return "http://" + c.Endpoint
}

// ObjectURL возвращает адрес объекта в path-style
func (c Config) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.EndpointURL(), c.BucketName, key)
}

// Client представляет собой клиент для взаимодействия с MinIO.
type Client struct {
	s3Client *s3.Client
	uploader *manager.Uploader
	cfg      Config
	logger   *slog.Logger
}

// NewMinioClient создает клиента MinIO и при необходимости создаёт бакет архива.
func NewMinioClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" || cfg.Endpoint == "" || cfg.Region == "" {
		return nil, fmt.Errorf("MinIO credentials (MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_ENDPOINT, MINIO_REGION) must be set")
	}

	cfgAws, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(cfgAws, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.EndpointURL())
		o.UsePathStyle = true
	})

	c := &Client{
		s3Client: s3Client,
		uploader: manager.NewUploader(s3Client),
		cfg:      cfg,
		logger:   logger,
	}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.s3Client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(c.cfg.BucketName)})
	if err == nil {
		c.logger.Info("bucket already exists", "bucket", c.cfg.BucketName)
		return nil
	}

	c.logger.Warn("bucket not found, creating", "bucket", c.cfg.BucketName)

	input := &s3.CreateBucketInput{Bucket: aws.String(c.cfg.BucketName)}
	// us-east-1 не принимает явный LocationConstraint
	if c.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.cfg.Region),
		}
	}
	if _, err := c.s3Client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.cfg.BucketName, err)
	}

	waiter := s3.NewBucketExistsWaiter(c.s3Client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.cfg.BucketName)}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s' to be created: %w", c.cfg.BucketName, err)
	}

	c.logger.Info("bucket created successfully", "bucket", c.cfg.BucketName)
	return nil
}

// UploadFile загружает объект в бакет архива. Реализует ports.FileStorage.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	start := time.Now()

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.BucketName),
		Key:         aws.String(objectKey),
		Body:        fileContent,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", objectKey, c.cfg.BucketName, err)
	}

	c.logger.Info("object uploaded",
		"key", objectKey,
		"bucket", c.cfg.BucketName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c.cfg.ObjectURL(objectKey), nil
}
