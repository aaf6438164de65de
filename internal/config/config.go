package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddress string        `envconfig:"SERVER_ADDRESS" default:":8000"`
	MongoURI      string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDB       string        `envconfig:"MONGODB_DB" default:"gatormarket"`
	JWTSecret     string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`

	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinIOBucket    string `envconfig:"MINIO_BUCKET" default:"gatormarket-images"`
	MinIOUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	// ImageBaseURL overrides the public base for uploaded-object URLs
	// (e.g. an R2/CDN host). Empty means endpoint + bucket.
	ImageBaseURL string `envconfig:"IMAGE_BASE_URL" default:""`

	MaxUploadSizeMB int64    `envconfig:"MAX_UPLOAD_SIZE_MB" default:"10"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
