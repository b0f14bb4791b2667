package storage

import "context"

// Staged identifies an uploaded temporary object.
type Staged struct {
	// URI is the fully qualified gs://bucket/path form handed to the
	// recognition service.
	URI string
	// Object is the path relative to the bucket, used for deletion.
	Object string
}

// Gateway stages extracted audio in object storage and removes it once
// the recognition job has consumed it.
type Gateway interface {
	Stage(ctx context.Context, localPath string) (Staged, error)
	Delete(ctx context.Context, objectPath string) error
}
