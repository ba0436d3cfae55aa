package events

import "context"

// ImageStore is the image-storage delegate: it turns an uploaded file into a
// URL and deletes by URL. The real backend (Cloudinary in the original
// deployment) lives outside this repository.
type ImageStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
