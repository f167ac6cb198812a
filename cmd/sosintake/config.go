package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sosintake/internal/notify"
	"sosintake/internal/storage"
	"sosintake/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	switch c.StorageDriver {
	case types.StorageDriverS3:
		if c.S3BucketName == "" {
			return nil, fmt.Errorf("set S3_BUCKET_NAME when STORAGE_DRIVER is %q", types.StorageDriverS3)
		}
	case types.StorageDriverLocal:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.WebhookTimeoutSec == 0 {
		c.WebhookTimeoutSec = 10
	}

	return c, nil
}

func newLogger(c *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.WithError(err).WithField("log_level", c.LogLevel).Warn("invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return awsConfig, nil
}

func newBlobStore(ctx context.Context, c *types.Config) (storage.BlobStore, error) {
	if c.StorageDriver == types.StorageDriverLocal {
		return storage.NewLocalStorage(c.LocalStoragePath)
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return storage.NewS3Storage(s3.NewFromConfig(awsConfig), c.S3BucketName, c.S3KeyPrefix), nil
}

// newNotifier returns nil when no webhook targets are configured.
func newNotifier(logger *logrus.Logger, c *types.Config) notify.Notifier {
	targets := notify.ParseTargets(c.WebhookURLs)
	if len(targets) == 0 {
		return nil
	}

	client := &http.Client{Timeout: time.Duration(c.WebhookTimeoutSec) * time.Second}

	return notify.NewWebhook(logger, client, targets, c.PublicBaseURL)
}
