package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
)

// GetUnusedBuckets retorna buckets vazios ou cujo objeto mais recente é anterior
// ao threshold. Apenas as primeiras pageLimit páginas de objetos são lidas, então
// buckets grandes são avaliados por amostra.
func (r *AWSRepositoryImpl) GetUnusedBuckets(ctx context.Context, threshold time.Time, thresholdDays int) ([]entity.UnusedBucket, error) {
	bucketsOutput, err := r.clients.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	unused := []entity.UnusedBucket{}
	for _, bucket := range bucketsOutput.Buckets {
		name := aws.ToString(bucket.Name)

		objectCount, newest, err := r.sampleBucket(ctx, name, aws.ToString(bucket.BucketRegion))
		if err != nil {
			return nil, err
		}

		var status string
		switch {
		case objectCount == 0:
			status = entity.BucketStatusEmpty
		case newest.Before(threshold):
			status = fmt.Sprintf(entity.BucketStatusNotAccessed, thresholdDays)
		default:
			continue
		}

		r.log.WithFields(map[string]interface{}{
			"bucket": name,
			"status": status,
		}).Debugf("unused bucket")
		unused = append(unused, entity.UnusedBucket{BucketName: name, Status: status})
	}
	return unused, nil
}

// sampleBucket counts the objects on the first pageLimit listing pages and
// returns the newest LastModified among them, in UTC.
func (r *AWSRepositoryImpl) sampleBucket(ctx context.Context, bucket, bucketRegion string) (int, time.Time, error) {
	var optFns []func(*s3.Options)
	if bucketRegion != "" && bucketRegion != r.region {
		optFns = append(optFns, func(o *s3.Options) { o.Region = bucketRegion })
	}

	var (
		count  int
		newest time.Time
	)
	paginator := s3.NewListObjectsV2Paginator(r.clients.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for page := 0; page < r.pageLimit && paginator.HasMorePages(); page++ {
		output, err := paginator.NextPage(ctx, optFns...)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("listing objects of bucket %s: %w", bucket, err)
		}
		for _, obj := range output.Contents {
			count++
			if obj.LastModified != nil && obj.LastModified.UTC().After(newest) {
				newest = obj.LastModified.UTC()
			}
		}
	}
	return count, newest, nil
}
