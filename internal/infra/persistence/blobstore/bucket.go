// Package blobstore persists client state in a gocloud.dev blob bucket.
package blobstore

import (
	"context"
	"log/slog"

	"cooked/config"
	"cooked/internal/domain/lifecycle"
	"cooked/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered URL schemes: file:// and mem://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// BucketParams holds dependencies for the session bucket, injected by Fx
type BucketParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewBucket opens the bucket named by session.bucketUrl and closes it on stop.
func NewBucket(params BucketParams) (*blob.Bucket, error) {
	url := params.Config.Session.BucketURL

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "open session bucket %q", url)
	}

	params.Logger.Info("Session bucket opened", slog.String("url", url))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing session bucket")

			return bucket.Close()
		},
	})

	return bucket, nil
}

// OpenBucket opens url outside of Fx, for the CLI.
func OpenBucket(ctx context.Context, url string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "open session bucket %q", url)
	}

	return bucket, nil
}

// Module provides the blob store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBucket),
	fx.Provide(NewSessionRepositoryFromConfig),
)
