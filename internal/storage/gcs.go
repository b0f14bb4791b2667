package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Stage uploads the local file to {tmpDir}/{uniqueName}{ext} in the
// bucket. The target path is checked first; a pre-existing object is a
// fatal collision, not something to overwrite or rename around.
func (g *implGateway) Stage(ctx context.Context, localPath string) (Staged, error) {
	contents, err := os.ReadFile(localPath)
	if err != nil {
		return Staged{}, fmt.Errorf("read local file: %w", err)
	}

	object := g.objectName(filepath.Ext(localPath))

	client, err := g.newClient(ctx)
	if err != nil {
		return Staged{}, err
	}
	defer client.Close()

	handle := client.Bucket(g.bucket).Object(object)

	_, err = handle.Attrs(ctx)
	switch {
	case err == nil:
		return Staged{}, fmt.Errorf("target object already exists in storage: %s", object)
	case !errors.Is(err, gcs.ErrObjectNotExist):
		return Staged{}, fmt.Errorf("check target object: %w", err)
	}

	w := handle.NewWriter(ctx)
	if _, err := w.Write(contents); err != nil {
		w.Close()
		return Staged{}, fmt.Errorf("upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return Staged{}, fmt.Errorf("upload object: %w", err)
	}

	staged := Staged{
		URI:    ObjectURI(g.bucket, object),
		Object: object,
	}
	g.logger.Info(ctx, "Staged audio: %s", staged.URI)
	return staged, nil
}

// Delete removes a staged object. An object that is already gone counts
// as deleted.
func (g *implGateway) Delete(ctx context.Context, objectPath string) error {
	client, err := g.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	err = client.Bucket(g.bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		g.logger.Debug(ctx, "Staged audio already deleted: %s", objectPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	g.logger.Info(ctx, "Deleted staged audio: %s", objectPath)
	return nil
}

func (g *implGateway) newClient(ctx context.Context) (*gcs.Client, error) {
	client, err := gcs.NewClient(ctx, option.WithCredentialsFile(g.credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}

// objectName builds a practically collision-free target path from the
// upload time and a random suffix.
func (g *implGateway) objectName(ext string) string {
	stamp := time.Now().UTC().Format("20060102t150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/audio_%s_%s%s", strings.TrimSuffix(g.tmpDir, "/"), stamp, suffix, ext)
}

// ObjectURI renders the gs://bucket/path form of an object.
func ObjectURI(bucket, object string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, object)
}

// RelativeObjectPath strips the gs://bucket/ prefix from a URI, leaving
// the path relative to the bucket. The URI is returned unchanged when it
// does not carry that prefix.
func RelativeObjectPath(bucket, uri string) string {
	return strings.TrimPrefix(uri, fmt.Sprintf("gs://%s/", bucket))
}
