package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 upload target.
type S3Config struct {
	// Region is the AWS region (e.g., "us-east-1")
	Region string

	// Bucket is the target bucket name
	Bucket string

	// Prefix is prepended to every uploaded key
	Prefix string

	// Endpoint overrides the default S3 endpoint (MinIO, LocalStack)
	Endpoint string

	// UsePathStyle forces path-style addressing
	UsePathStyle bool

	// Credentials (optional, default chain is used when empty)
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// UploadTimeout bounds each object upload
	UploadTimeout time.Duration
}

// DefaultS3Config returns sensible defaults.
func DefaultS3Config(bucket, region string) S3Config {
	return S3Config{
		Bucket:        bucket,
		Region:        region,
		UploadTimeout: 5 * time.Minute,
	}
}

// Uploader pushes exported artifacts to S3.
type Uploader struct {
	cfg    S3Config
	client *s3.Client
}

// NewUploader builds the AWS client from the config plus the default
// credential chain.
func NewUploader(ctx context.Context, cfg S3Config) (*Uploader, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken,
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("export: load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Uploader{
		cfg:    cfg,
		client: s3.NewFromConfig(awsCfg, s3Opts...),
	}, nil
}

// Upload pushes one local file under the configured prefix and returns
// the object key.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()

	key := filepath.Base(path)
	if u.cfg.Prefix != "" {
		key = u.cfg.Prefix + "/" + key
	}

	if u.cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.UploadTimeout)
		defer cancel()
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("export: upload %s: %w", key, err)
	}
	return key, nil
}

// UploadAll uploads every path, failing on the first error.
func (u *Uploader) UploadAll(ctx context.Context, paths []string) ([]string, error) {
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		key, err := u.Upload(ctx, p)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
