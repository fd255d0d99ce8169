package domain

import "context"

// MediaStorage is the object store holding slot images.
type MediaStorage interface {
	// Upload stores data under path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
	// PathFromURL returns the object path of a public URL served by this storage,
	// or false when the URL points elsewhere.
	PathFromURL(publicURL string) (string, bool)
}

// MediaService prepares and stores images referenced by slot payloads.
type MediaService interface {
	UploadImage(ctx context.Context, collection Collection, data []byte) (publicURL string, err error)
	RemoveImage(ctx context.Context, path string) error
}
