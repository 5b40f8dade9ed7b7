package uploads

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSUploader implements Uploader on a Cloud Storage bucket, issuing
// Firebase-style download-token URLs.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

// NewGCSUploader creates a new GCSUploader.
func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{Client: client, Bucket: bucket}
}

// Make sure we conform to the interface
var _ Uploader = (*GCSUploader)(nil)

// Upload writes the blob under a token-protected object path and returns the
// public download URL.
func (u *GCSUploader) Upload(ctx context.Context, data []byte, name, contentType string) (string, error) {
	token := uuid.NewString()
	objectPath := "evidence/" + uuid.NewString() + "-" + name

	obj := u.Client.Bucket(u.Bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("failed to write evidence object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize evidence object: %w", err)
	}

	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.Bucket, url.PathEscape(objectPath), token)
	return publicURL, nil
}
