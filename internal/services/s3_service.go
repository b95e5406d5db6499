package services

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/logging"
	"github.com/sigelp/backend/internal/config"
)

// S3Service mirrors legajo documents to an S3-compatible bucket so the
// archive survives loss of the application host. Mirroring is optional;
// when no endpoint is configured the service is disabled.
type S3Service struct {
	client *s3.Client
	cfg    *config.Config
}

func NewS3Service(cfg *config.Config) (*S3Service, error) {
	if cfg.DocsS3Endpoint == "" && cfg.DocsS3AccessKeyID == "" {
		return &S3Service{cfg: cfg}, nil
	}

	endpoint := cfg.DocsS3Endpoint
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: cfg.DocsS3Region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.DocsS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.DocsS3AccessKeyID, cfg.DocsS3SecretAccessKey, "")),
		resolver,
		awsconfig.WithLogger(logging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.DocsS3UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})

	return &S3Service{client: client, cfg: cfg}, nil
}

// Enabled reports whether a mirror bucket is configured
func (s *S3Service) Enabled() bool {
	return s.client != nil
}

// UploadDocument uploads a document blob to the mirror bucket
func (s *S3Service) UploadDocument(ctx context.Context, key string, body io.Reader, contentType string) error {
	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.DocsBucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
		ACL:         s3types.ObjectCannedACLPrivate,
	}, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 })
	return err
}

// PresignGet returns a temporary download URL for a mirrored document
func (s *S3Service) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	out, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{Bucket: &s.cfg.DocsBucket, Key: &key}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// DeleteDocument removes a mirrored document
func (s *S3Service) DeleteDocument(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.cfg.DocsBucket, Key: &key})
	return err
}
