package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config configures the object storage target. Empty credentials fall back
// to the default AWS credential chain; an empty endpoint means AWS itself.
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // S3-compatible endpoint, e.g. MinIO
	Region    string
	Bucket    string
	Prefix    string // Prepended to every object key
	ACL       string // Optional canned ACL, e.g. "public-read"
}

// Validate checks the configuration before a session is created
func (c S3Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("s3: bucket is required")
	}
	if c.Region == "" {
		return errors.New("s3: region is required")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("s3: access key and secret key must be set together")
	}
	return nil
}

// Uploader puts rendered images into an S3 bucket
type Uploader struct {
	config S3Config
	client s3iface.S3API
	logger core.Logger
}

// NewUploader creates an S3 session from config
func NewUploader(config S3Config, logger core.Logger) (*Uploader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newUploaderWithClient(config, s3.New(sess), logger), nil
}

func newUploaderWithClient(config S3Config, client s3iface.S3API, logger core.Logger) *Uploader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Uploader{config: config, client: client, logger: logger}
}

// Key returns the object key used for name
func (u *Uploader) Key(name string) string {
	return u.config.Prefix + name
}

// Upload stores data under name (plus the configured prefix)
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(name)),
	}
	if u.config.ACL != "" {
		input.ACL = aws.String(u.config.ACL)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", u.config.Bucket, key, size)
	return nil
}
