package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
	memoryrepo "github.com/tunehub/musician-media/pkg/musicmedia/repo/memory"
	mongorepo "github.com/tunehub/musician-media/pkg/musicmedia/repo/mongo"
	fsstorage "github.com/tunehub/musician-media/pkg/musicmedia/storage/fs"
	gridfsstorage "github.com/tunehub/musician-media/pkg/musicmedia/storage/gridfs"
	memorystorage "github.com/tunehub/musician-media/pkg/musicmedia/storage/memory"
	s3storage "github.com/tunehub/musician-media/pkg/musicmedia/storage/s3"
)

// ServerConfig represents server configuration for the musician media service
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	// Metadata repository configuration
	DatabaseType  string `env:"DATABASE_TYPE" env-default:"memory"` // "memory", "mongo"
	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" env-default:"musician_media"`

	// Blob storage configuration
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"` // "memory", "fs", "gridfs", "s3"
	FSBaseDir      string `env:"FS_BASE_DIR" env-default:"./data/storage"`

	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"` // optional, for MinIO and friends
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
}

// Load reads configuration from the environment and validates it.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.DatabaseType {
	case "memory", "mongo":
	default:
		return errors.New("database_type must be 'memory' or 'mongo'")
	}

	switch c.StorageBackend {
	case "memory", "fs", "gridfs", "s3":
	default:
		return errors.New("storage_backend must be 'memory', 'fs', 'gridfs' or 's3'")
	}

	if c.DatabaseType == "mongo" && c.MongoURI == "" {
		return errors.New("mongo_uri is required when using mongo")
	}

	// GridFS lives inside MongoDB, so it always needs a connection even when
	// the metadata repository is in memory.
	if c.StorageBackend == "gridfs" && c.MongoURI == "" {
		return errors.New("mongo_uri is required when using gridfs storage")
	}

	if c.StorageBackend == "s3" && c.S3Bucket == "" {
		return errors.New("s3_bucket is required when using s3 storage")
	}

	return nil
}

func (c *ServerConfig) needsMongo() bool {
	return c.DatabaseType == "mongo" || c.StorageBackend == "gridfs"
}

// BuildService creates a Service instance from the server configuration.
// The returned cleanup function closes any database connections the build
// opened and must be called on shutdown.
func (c *ServerConfig) BuildService(ctx context.Context, logger *zap.Logger) (musicmedia.Service, func(context.Context) error, error) {
	cleanup := func(context.Context) error { return nil }

	var client *mongo.Client
	if c.needsMongo() {
		var err error
		client, err = connectMongo(ctx, c.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		cleanup = client.Disconnect
	}

	repo, err := c.buildRepository(client)
	if err != nil {
		cleanup(ctx)
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildStorageBackend(client)
	if err != nil {
		cleanup(ctx)
		return nil, nil, fmt.Errorf("failed to build storage backend %s: %w", c.StorageBackend, err)
	}

	svc, err := musicmedia.New(
		musicmedia.WithRepository(repo),
		musicmedia.WithBlobStore(store),
		musicmedia.WithLogger(logger),
	)
	if err != nil {
		cleanup(ctx)
		return nil, nil, err
	}

	return svc, cleanup, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return client, nil
}

func (c *ServerConfig) buildRepository(client *mongo.Client) (musicmedia.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memoryrepo.New(), nil
	case "mongo":
		return mongorepo.New(client.Database(c.MongoDatabase)), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildStorageBackend(client *mongo.Client) (musicmedia.BlobStore, error) {
	switch c.StorageBackend {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FSBaseDir})

	case "gridfs":
		return gridfsstorage.New(client.Database(c.MongoDatabase))

	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.S3Region,
			Bucket:          c.S3Bucket,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			Endpoint:        c.S3Endpoint,
			UsePathStyle:    c.S3UsePathStyle,
		})

	default:
		return nil, fmt.Errorf("unsupported storage backend type: %s", c.StorageBackend)
	}
}
