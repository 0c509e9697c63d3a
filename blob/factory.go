package blob

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open constructs a blob store from a target URL:
//
//	mem://                  in-process memory
//	file:///var/exports     local directory
//	s3://bucket/prefix      S3-compatible bucket (connection from env)
func Open(ctx context.Context, target string) (Store, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse blob target %q: %w", target, err)
	}
	switch u.Scheme {
	case "mem":
		return NewMemoryStore(), nil
	case "file":
		return NewFilesystemStore(u.Path)
	case "s3":
		prefix := strings.Trim(u.Path, "/")
		return NewS3Store(ctx, s3ConfigFromEnv(u.Host, prefix))
	default:
		return nil, fmt.Errorf("unsupported blob scheme %q", u.Scheme)
	}
}
