package config

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
}

// NewS3Config initializes the S3 client for the configured image bucket
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("no image bucket configured")
	}

	// Credentials come from the environment or shared config
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3Bucket,
		Region:     cfg.AWSRegion,
	}, nil
}

// Upload stores an object under key and returns its public URL
func (s *S3Config) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.BucketName, s.Region, key), nil
}
