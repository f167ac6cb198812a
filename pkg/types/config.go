package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL               string `envconfig:"DATABASE_URL"`
	DatabaseMaxConns          int32  `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMinConns          int32  `envconfig:"DATABASE_MIN_CONNS" default:"1"`
	DatabaseConnectTimeoutSec uint   `envconfig:"DATABASE_CONNECT_TIMEOUT_SEC" default:"5"`

	// Photo storage. STORAGE_DRIVER is either "s3" or "local".
	StorageDriver    string `envconfig:"STORAGE_DRIVER" default:"s3"`
	S3BucketName     string `envconfig:"S3_BUCKET_NAME"`
	S3KeyPrefix      string `envconfig:"S3_KEY_PREFIX" default:"uploads/"`
	LocalStoragePath string `envconfig:"LOCAL_STORAGE_PATH" default:"./data/uploads"`
	MaxUploadBytes   int64  `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"` // 50 MB

	// Comma separated list of webhook targets notified on every accepted request
	WebhookURLs       string `envconfig:"WEBHOOK_URLS"`
	WebhookTimeoutSec uint   `envconfig:"WEBHOOK_TIMEOUT_SEC" default:"10"`

	// Used to build the photo links included in notifications
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

const (
	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"
)
