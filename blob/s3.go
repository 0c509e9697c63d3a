package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store on an S3-compatible backend (AWS S3 or MinIO).
// Single bucket; keys map to object keys directly, under an optional
// prefix.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Config holds explicit construction parameters. Credentials fall back
// to the default chain when not set explicitly.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	Endpoint        string // optional, for MinIO
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// NewS3Store creates an S3 blob store from S3Config
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// Environment variables:
//   SALESTRACK_S3_REGION=<region> (default us-east-1)
//   SALESTRACK_S3_ENDPOINT=<url> (optional, for MinIO)
//   SALESTRACK_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (optional)

// s3ConfigFromEnv fills connection settings from the process environment
func s3ConfigFromEnv(bucket, prefix string) S3Config {
	return S3Config{
		Bucket:          bucket,
		Prefix:          prefix,
		Region:          os.Getenv("SALESTRACK_S3_REGION"),
		Endpoint:        os.Getenv("SALESTRACK_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		PathStyle:       strings.EqualFold(os.Getenv("SALESTRACK_S3_PATH_STYLE"), "true"),
	}
}

// Driver returns the blob driver identifier
func (s *S3Store) Driver() Driver { return DriverS3 }

func (s *S3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// Put stores a new blob; emulates create-only via a Head check first
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	objKey := s.objectKey(key)
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &objKey}); err == nil {
		return Info{}, fmt.Errorf("blob %s already exists", key)
	}
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &objKey, Body: r}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, err
	}
	return s.head(ctx, key)
}

// Get returns blob metadata and the object body
func (s *S3Store) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	objKey := s.objectKey(key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &objKey})
	if err != nil {
		return Info{}, nil, err
	}
	info := Info{Key: key, ContentType: aws.ToString(out.ContentType), LastModified: aws.ToTime(out.LastModified)}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	return info, out.Body, nil
}

// List returns all blobs matching prefix, sorted by key
func (s *S3Store) List(ctx context.Context, prefix string) ([]Info, error) {
	full := s.objectKey(prefix)
	var infos []Info
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket: &s.bucket, Prefix: &full, ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if s.prefix != "" {
				key = strings.TrimPrefix(key, s.prefix+"/")
			}
			info := Info{Key: key, LastModified: aws.ToTime(obj.LastModified)}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			infos = append(infos, info)
		}
		if out.IsTruncated != nil && *out.IsTruncated && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Delete removes the blob. S3 deletes are idempotent, so existence is
// assumed when the call succeeds.
func (s *S3Store) Delete(ctx context.Context, key string) (bool, error) {
	objKey := s.objectKey(key)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &objKey}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *S3Store) head(ctx context.Context, key string) (Info, error) {
	objKey := s.objectKey(key)
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &objKey})
	if err != nil {
		return Info{}, err
	}
	info := Info{Key: key, ContentType: aws.ToString(out.ContentType), LastModified: aws.ToTime(out.LastModified)}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	return info, nil
}
