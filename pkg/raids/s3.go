package raids

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage keeps the raid log in an S3 bucket, one JSON object per raid.
// Suitable for deployments without a persistent disk.
type S3Storage struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Options configures S3-backed raid storage.
type S3Options struct {
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string // custom endpoint for S3-compatible services
	AccessKey string
	SecretKey string
}

// NewS3Storage creates an S3-backed raid log and verifies bucket access.
func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "raids/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var cfg aws.Config
	var err error
	if opts.AccessKey != "" && opts.SecretKey != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
		)
	} else {
		// Default credentials chain (IAM role, env vars, shared config).
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if opts.Endpoint != "" {
		client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(cfg)
	}

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(opts.Bucket),
	}); err != nil {
		return nil, fmt.Errorf("failed to access S3 bucket '%s': %w", opts.Bucket, err)
	}

	log.Printf("[RAIDS] S3 storage initialized: bucket=%s, region=%s, prefix=%s", opts.Bucket, region, prefix)

	return &S3Storage{
		client: client,
		bucket: opts.Bucket,
		prefix: prefix,
	}, nil
}

// Save uploads one raid as a JSON object.
func (s *S3Storage) Save(raid *Raid) error {
	if raid.ID == "" {
		return fmt.Errorf("raid ID cannot be empty")
	}

	data, err := json.Marshal(raid)
	if err != nil {
		return fmt.Errorf("failed to marshal raid: %w", err)
	}

	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(raid.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save raid to S3: %w", err)
	}

	return nil
}

// List downloads every raid object under the prefix, newest first.
func (s *S3Storage) List() ([]*Raid, error) {
	ctx := context.Background()

	var raids []*Raid
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list raids in S3: %w", err)
		}

		for _, object := range page.Contents {
			raid, err := s.get(ctx, aws.ToString(object.Key))
			if err != nil {
				log.Printf("[RAIDS] Skipping unreadable raid object %s: %v", aws.ToString(object.Key), err)
				continue
			}
			raids = append(raids, raid)
		}
	}

	sort.Slice(raids, func(i, j int) bool {
		return raids[i].Date.After(raids[j].Date)
	})

	return raids, nil
}

// Delete removes one raid object.
func (s *S3Storage) Delete(raidID string) error {
	ctx := context.Background()
	key := s.key(raidID)

	// DeleteObject succeeds on missing keys, so check existence first to
	// keep the ErrRaidNotFound contract.
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isS3NotFound(err) {
			return ErrRaidNotFound
		}
		return fmt.Errorf("failed to check raid in S3: %w", err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete raid from S3: %w", err)
	}

	return nil
}

// Close is a no-op; the S3 client holds no resources needing cleanup.
func (s *S3Storage) Close() error {
	return nil
}

func (s *S3Storage) key(raidID string) string {
	return s.prefix + raidID + ".json"
}

func (s *S3Storage) get(ctx context.Context, key string) (*Raid, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := result.Body.Close(); err != nil {
			log.Printf("[RAIDS] Failed to close S3 object body: %v", err)
		}
	}()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}

	var raid Raid
	if err := json.Unmarshal(data, &raid); err != nil {
		return nil, err
	}

	return &raid, nil
}

func isS3NotFound(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey"))
}
