// Package objectstore keeps the ledger document as a single object in an
// S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const (
	defaultRegion = "us-east-1"
	defaultKey    = "tenderbook/ledger.json"
)

type Config struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string // optional, e.g. MinIO
	// Static credentials; the default AWS chain is used when empty.
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

type Store struct {
	client *s3.Client
	bucket string
	key    string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// S3-compatible servers often reject trailing checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return NewWithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewWithClient wraps an existing client. An empty key uses the default
// object name.
func NewWithClient(client *s3.Client, bucket, key string) *Store {
	if key == "" {
		key = defaultKey
	}

	return &Store{client: client, bucket: bucket, key: key}
}

// Load reads the document object. A missing object is an empty document.
func (s *Store) Load(ctx context.Context) (ledger.Document, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return ledger.Document{}, nil
		}

		return ledger.Document{}, fmt.Errorf("getting object %s: %w", s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return ledger.Document{}, fmt.Errorf("reading object %s: %w", s.key, err)
	}

	var doc ledger.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ledger.Document{}, fmt.Errorf("decoding document: %w", err)
	}

	return doc, nil
}

// Save overwrites the document object.
func (s *Store) Save(ctx context.Context, doc ledger.Document) error {
	data, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("putting object %s: %w", s.key, err)
	}

	return nil
}
