package capture

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a capture stored as an S3 object.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := capture.S3Source{
//	    Client: s3.NewFromConfig(cfg),
//	    Bucket: "captures",
//	    Key:    "conn-42.bin",
//	}
type S3Source struct {
	Client S3API
	Bucket string
	Key    string
}

// Open implements Source by issuing a GetObject and returning its body.
func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("capture: get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return out.Body, nil
}
