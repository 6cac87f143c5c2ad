package corpus

import (
	"context"
	"errors"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

var ErrNoS3Client = errors.New("s3 corpus location requires an s3 client")

// Source resolves a corpus location to recipes. Locations are a local CSV
// path, s3://bucket/key, or a postgres:// URL.
type Source struct {
	S3 ObjectGetter
}

// IsS3 reports whether location points at an S3 object.
func IsS3(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// IsPostgres reports whether location is a Postgres URL.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Load reads the whole corpus from location.
func (s Source) Load(ctx context.Context, location string) ([]model.Recipe, error) {
	switch {
	case IsS3(location):
		if s.S3 == nil {
			return nil, ErrNoS3Client
		}
		return LoadS3(ctx, s.S3, location)
	case IsPostgres(location):
		store, err := OpenStore(ctx, location)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx)
	default:
		return LoadFile(location)
	}
}
