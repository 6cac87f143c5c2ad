package corpus

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// ObjectGetter is the subset of the S3 client used to fetch a corpus.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 location %q: %w", uri, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: want s3://bucket/key", uri)
	}
	return u.Host, key, nil
}

// LoadS3 downloads and parses a CSV corpus stored in S3.
func LoadS3(ctx context.Context, client ObjectGetter, uri string) ([]model.Recipe, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corpus %s: %w", uri, err)
	}
	defer out.Body.Close()

	recipes, err := ReadCSV(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", uri, err)
	}
	return recipes, nil
}
