package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"s3fetch/internal/models"
	"strings"
)

const DefaultRegion = "sa-east-1"

var (
	ErrBucketMissing          = errors.New("BUCKET is not set")
	ErrFileListMissing        = errors.New("AWS_FILES is not set")
	ErrFileListInvalidJSON    = errors.New("AWS_FILES is not valid JSON")
	ErrFileListInvalidMapping = errors.New("AWS_FILES must be an array of single-key objects")
)

type Config struct {
	Bucket    string
	Region    string
	Files     []models.FileMapping
	RootDir   string
	APIURL    string
	AccessKey string
	SecretKey string
}

// LoadOptions carries the values that can be supplied on the command line
// instead of through the environment.
type LoadOptions struct {
	EnvFile string
	RootDir string
	Bucket  string
	Logger  *zap.SugaredLogger
}

// Load reads the .env file (if any), then builds and validates a Config from
// the environment. A missing .env file is only a warning.
func Load(opts LoadOptions) (*Config, error) {
	root, err := resolveRoot(opts.RootDir)
	if err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = filepath.Join(root, ".env")
	}
	if err := godotenv.Load(envFile); err != nil && opts.Logger != nil {
		opts.Logger.Warnf("%s not loaded, using environment variables only: %v", envFile, err)
	}

	bucket := opts.Bucket
	if bucket == "" {
		bucket = getEnv("BUCKET", "")
	}

	files, err := Parse(bucket, getEnv("AWS_FILES", ""))
	if err != nil {
		return nil, err
	}

	return &Config{
		Bucket:    bucket,
		Region:    getEnv("REGION", DefaultRegion),
		Files:     files,
		RootDir:   root,
		APIURL:    getEnv("API_URL", ""),
		AccessKey: getEnv("ACCESS_KEY", ""),
		SecretKey: getEnv("SECRET_KEY", ""),
	}, nil
}

// Parse validates the raw bucket name and file list and decodes the list into
// mappings, keeping the configured order.
func Parse(bucket, files string) ([]models.FileMapping, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrBucketMissing
	}
	if strings.TrimSpace(files) == "" {
		return nil, ErrFileListMissing
	}
	if !json.Valid([]byte(files)) {
		return nil, ErrFileListInvalidJSON
	}

	var raw []map[string]string
	if err := json.Unmarshal([]byte(files), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileListInvalidMapping, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an array", ErrFileListInvalidMapping)
	}

	mappings := make([]models.FileMapping, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return nil, fmt.Errorf("%w: entry %d has %d keys", ErrFileListInvalidMapping, i, len(entry))
		}
		for key, path := range entry {
			if key == "" || path == "" {
				return nil, fmt.Errorf("%w: entry %d has an empty key or path", ErrFileListInvalidMapping, i)
			}
			mappings = append(mappings, models.FileMapping{RemoteKey: key, LocalPath: path})
		}
	}

	return mappings, nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		root = getEnv("ROOT_DIR", ".")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root directory %s: %w", root, err)
	}
	return abs, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
