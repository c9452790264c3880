package s3client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	appConfig "s3fetch/config"
	"s3fetch/internal/models"
)

var (
	ErrNotFound     = errors.New("object not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Fetcher retrieves objects of a single bucket.
type Fetcher interface {
	URL(key string) string
	Fetch(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (*models.ObjectInfo, error)
}

// StatusError reports a non-success HTTP response for an object request.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected response: %s", e.Status)
	}
	return fmt.Sprintf("unexpected response: %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	}
	return false
}

// HTTPStatus extracts the HTTP status code carried by err, or 0 if there is none.
func HTTPStatus(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

// New returns the fetcher selected by source: "public" for anonymous HTTPS
// requests, "sdk" for requests signed through the AWS SDK.
func New(ctx context.Context, cfg *appConfig.Config, source string) (Fetcher, error) {
	switch strings.ToLower(source) {
	case "", SourcePublic:
		return NewPublicFetcher(cfg, nil), nil
	case SourceSDK:
		return NewSDKFetcher(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown source %q, expected %q or %q", source, SourcePublic, SourceSDK)
	}
}

const (
	SourcePublic = "public"
	SourceSDK    = "sdk"
)

// ObjectURL builds the URL of key in bucket. Without an API URL the regional
// virtual-hosted form is used, otherwise a path-style URL below apiURL.
func ObjectURL(bucket, region, apiURL, key string) string {
	escaped := escapeKey(key)
	if apiURL != "" {
		return strings.TrimSuffix(apiURL, "/") + "/" + bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, escaped)
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
