package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"go.uber.org/zap"
)

// DatasheetClient hands out short-lived download links for technical sheets
// kept in a private S3-compatible bucket.
type DatasheetClient struct {
	presigner  *s3.PresignClient
	bucketName string
	ttl        time.Duration
}

// NewDatasheetClient creates a client for an S3-compatible bucket. An empty
// endpoint uses the AWS default for region.
func NewDatasheetClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string, ttl time.Duration) *DatasheetClient {
	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Datasheet storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &DatasheetClient{
		presigner:  s3.NewPresignClient(s3.New(opts)),
		bucketName: bucketName,
		ttl:        ttl,
	}
}

// DatasheetURL presigns a GET for key
func (s *DatasheetClient) DatasheetURL(ctx context.Context, key string) (string, error) {
	start := time.Now()
	operation := "presignDatasheet"

	if err := ValidateKey(key); err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucketName),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String("application/pdf"),
		ResponseContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", path.Base(key))),
	}, s3.WithPresignExpires(s.ttl))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "datasheet_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to presign datasheet: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "datasheet_storage", operation, "success", duration,
		zap.String("key", key),
	)

	return req.URL, nil
}

// PublicDatasheets serves technical sheets from a public location such as
// the embedded static directory or a CDN.
type PublicDatasheets struct {
	BaseURL string
}

// DatasheetURL joins key onto the base URL
func (p PublicDatasheets) DatasheetURL(_ context.Context, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return strings.TrimRight(p.BaseURL, "/") + "/" + key, nil
}

// ValidateKey accepts relative PDF object keys only
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty datasheet key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		return fmt.Errorf("invalid datasheet key: %s", key)
	}
	if !strings.EqualFold(path.Ext(key), ".pdf") {
		return fmt.Errorf("invalid datasheet type: %s. Only pdf is allowed", key)
	}
	return nil
}
