package s3client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	appConfig "s3fetch/config"
	"s3fetch/internal/models"
)

// PublicFetcher reads publicly readable objects with plain HTTPS requests.
// No credentials are attached.
type PublicFetcher struct {
	client *http.Client
	config *appConfig.Config
}

// NewPublicFetcher returns a PublicFetcher using client, or a client without
// a request timeout when client is nil.
func NewPublicFetcher(cfg *appConfig.Config, client *http.Client) *PublicFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &PublicFetcher{client: client, config: cfg}
}

func (f *PublicFetcher) URL(key string) string {
	return ObjectURL(f.config.Bucket, f.config.Region, f.config.APIURL, key)
}

func (f *PublicFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	resp, err := f.do(ctx, http.MethodGet, key)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *PublicFetcher) Stat(ctx context.Context, key string) (*models.ObjectInfo, error) {
	resp, err := f.do(ctx, http.MethodHead, key)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	info := &models.ObjectInfo{
		Size:        resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
		ETag:        trimETag(resp.Header.Get("ETag")),
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			info.LastModified = t
		}
	}
	return info, nil
}

// do issues the request and returns the response only for 2xx statuses.
func (f *PublicFetcher) do(ctx context.Context, method, key string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, f.URL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}
