package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportArchiver keeps a copy of every generated CSV report in a bucket so
// the shop owner can re-download old reports without regenerating them.
type ReportArchiver struct {
	client *s3.Client
	bucket string
}

func NewReportArchiver(region, accessKey, secretKey, bucket string) *ReportArchiver {
	cfg := aws.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		),
	}
	return &ReportArchiver{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}
}

func (a *ReportArchiver) Upload(ctx context.Context, key string, content []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	return err
}
