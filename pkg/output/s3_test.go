package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// fakeS3 records PutObject calls; any other S3API method panics
type fakeS3 struct {
	s3iface.S3API
	inputs [][]byte
	keys   []string
	last   *s3.PutObjectInput
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, body)
	f.keys = append(f.keys, aws.StringValue(input.Key))
	f.last = input
	return &s3.PutObjectOutput{}, nil
}

func TestS3ConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  S3Config
		wantErr bool
	}{
		{"minimal", S3Config{Bucket: "renders", Region: "us-east-1"}, false},
		{"static credentials", S3Config{Bucket: "renders", Region: "us-east-1", AccessKey: "a", SecretKey: "b"}, false},
		{"missing bucket", S3Config{Region: "us-east-1"}, true},
		{"missing region", S3Config{Bucket: "renders"}, true},
		{"half credentials", S3Config{Bucket: "renders", Region: "us-east-1", AccessKey: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewUploaderRejectsInvalidConfig(t *testing.T) {
	if _, err := NewUploader(S3Config{}, nil); err == nil {
		t.Error("expected error for empty config")
	}
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	config := S3Config{Bucket: "renders", Region: "us-east-1", Prefix: "scenes/", ACL: "public-read"}
	uploader := newUploaderWithClient(config, client, nil)

	data := []byte("P3\n1 1\n255\n0 0 0\n")
	if err := uploader.Upload(context.Background(), "default.ppm", data); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(client.keys) != 1 || client.keys[0] != "scenes/default.ppm" {
		t.Fatalf("uploaded keys = %v, want [scenes/default.ppm]", client.keys)
	}
	if string(client.inputs[0]) != string(data) {
		t.Errorf("uploaded body = %q, want %q", client.inputs[0], data)
	}
	in := client.last
	if aws.StringValue(in.Bucket) != "renders" {
		t.Errorf("bucket = %q", aws.StringValue(in.Bucket))
	}
	if aws.Int64Value(in.ContentLength) != int64(len(data)) {
		t.Errorf("content length = %d, want %d", aws.Int64Value(in.ContentLength), len(data))
	}
	if aws.StringValue(in.ContentType) != "image/x-portable-pixmap" {
		t.Errorf("content type = %q", aws.StringValue(in.ContentType))
	}
	if aws.StringValue(in.ACL) != "public-read" {
		t.Errorf("ACL = %q, want public-read", aws.StringValue(in.ACL))
	}
}

func TestUploadWithoutACL(t *testing.T) {
	client := &fakeS3{}
	uploader := newUploaderWithClient(S3Config{Bucket: "renders", Region: "eu-west-1"}, client, nil)
	if err := uploader.Upload(context.Background(), "a.png", []byte{1}); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if client.last.ACL != nil {
		t.Errorf("ACL should be unset, got %q", aws.StringValue(client.last.ACL))
	}
}

func TestUploadError(t *testing.T) {
	cause := errors.New("access denied")
	uploader := newUploaderWithClient(S3Config{Bucket: "renders", Region: "us-east-1"}, &fakeS3{err: cause}, nil)

	err := uploader.Upload(context.Background(), "a.png", []byte{1})
	if !errors.Is(err, cause) {
		t.Errorf("Upload error = %v, want wrapped %v", err, cause)
	}
}

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func TestUploadLogging(t *testing.T) {
	config := S3Config{Bucket: "renders", Region: "us-east-1"}

	// Without a logger uploads are silent
	quiet := newUploaderWithClient(config, &fakeS3{}, nil)
	if _, ok := quiet.logger.(core.NopLogger); !ok {
		t.Errorf("nil logger should become core.NopLogger, got %T", quiet.logger)
	}
	if err := quiet.Upload(context.Background(), "a.png", []byte{1}); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	logger := &recordingLogger{}
	loud := newUploaderWithClient(config, &fakeS3{}, logger)
	if err := loud.Upload(context.Background(), "a.png", []byte{1, 2}); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(logger.messages) != 1 || !strings.Contains(logger.messages[0], "s3://renders/a.png (2 bytes)") {
		t.Errorf("unexpected upload log %v", logger.messages)
	}
}
