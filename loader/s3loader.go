package loader

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/routeconfig"
)

// loadChildrenRefKey is the Route.Data key an S3-backed lazy route carries
// its "s3://bucket/key.json" reference under.
const loadChildrenRefKey = routeconfig.DataKeyLoadChildrenRef

// ComponentResolver maps the string component identifier a JSON manifest
// names back to the opaque handle routeconfig.Route.Component expects. The
// core never inspects Component itself, so this is entirely the caller's
// naming scheme.
type ComponentResolver = routeconfig.ComponentResolver

// S3Loader implements routeconfig.Loader against AWS S3.
type S3Loader struct {
	client   *s3.Client
	resolver ComponentResolver
}

// NewS3Loader builds an S3Loader. resolver may be nil, in which case every
// loaded route's Component stays nil (useful when the manifest only
// declares redirects or further lazy boundaries).
func NewS3Loader(client *s3.Client, resolver ComponentResolver) *S3Loader {
	return &S3Loader{client: client, resolver: resolver}
}

// Load implements routeconfig.Loader. parent is forwarded unchanged as the
// scoped token resolver: an S3 manifest carries no DI container of its own,
// spec.md §6 only requires decoding routes plus (optionally) a narrower
// resolver, and the parent resolver already satisfies "narrower or equal".
func (l *S3Loader) Load(ctx context.Context, parent collab.TokenResolver, route *routeconfig.Route) (routeconfig.LoadedRouterConfig, error) {
	ref, _ := route.Data[loadChildrenRefKey].(string)
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return routeconfig.LoadedRouterConfig{}, fmt.Errorf("loader: route %q: %w", route.Path, err)
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return routeconfig.LoadedRouterConfig{}, fmt.Errorf("loader: fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return routeconfig.LoadedRouterConfig{}, fmt.Errorf("loader: read s3://%s/%s: %w", bucket, key, err)
	}

	routes, err := routeconfig.DecodeRoutes(body, l.resolver)
	if err != nil {
		return routeconfig.LoadedRouterConfig{}, fmt.Errorf("loader: decode s3://%s/%s: %w", bucket, key, err)
	}

	return routeconfig.LoadedRouterConfig{
		Routes:   routes,
		Resolver: parent,
	}, nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	const prefix = "s3://"
	if !strings.HasPrefix(ref, prefix) {
		return "", "", fmt.Errorf("missing or malformed loadChildrenRef %q, want s3://bucket/key", ref)
	}
	rest := strings.TrimPrefix(ref, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("missing or malformed loadChildrenRef %q, want s3://bucket/key", ref)
	}
	return parts[0], parts[1], nil
}
