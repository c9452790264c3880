package s3client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	appConfig "s3fetch/config"
	"s3fetch/internal/models"
)

// SDKFetcher reads objects through the AWS SDK, so private buckets and
// S3-compatible endpoints can be used.
type SDKFetcher struct {
	s3Client   *s3.Client
	downloader *manager.Downloader
	config     *appConfig.Config
}

func NewSDKFetcher(ctx context.Context, cfg *appConfig.Config) (*SDKFetcher, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.APIURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.APIURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	// Objects are fetched one request at a time.
	downloader := manager.NewDownloader(s3Client, func(d *manager.Downloader) {
		d.Concurrency = 1
	})

	return &SDKFetcher{
		s3Client:   s3Client,
		downloader: downloader,
		config:     cfg,
	}, nil
}

func (c *SDKFetcher) URL(key string) string {
	return ObjectURL(c.config.Bucket, c.config.Region, c.config.APIURL, key)
}

func (c *SDKFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := c.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", convertError(err))
	}
	return buf.Bytes(), nil
}

func (c *SDKFetcher) Stat(ctx context.Context, key string) (*models.ObjectInfo, error) {
	out, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head object: %w", convertError(err))
	}

	return &models.ObjectInfo{
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         trimETag(aws.ToString(out.ETag)),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// convertError maps SDK response errors onto StatusError so callers see the
// same errors regardless of the fetcher in use.
func convertError(err error) error {
	var respErr *awshttp.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}

	code := respErr.HTTPStatusCode()
	status := fmt.Sprintf("%d %s", code, http.StatusText(code))

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		status += " (" + apiErr.ErrorCode() + ")"
	}
	return &StatusError{Code: code, Status: status}
}

func trimETag(etag string) string {
	if len(etag) >= 2 && etag[0] == '"' && etag[len(etag)-1] == '"' {
		return etag[1 : len(etag)-1]
	}
	return etag
}
