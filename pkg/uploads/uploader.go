// Package uploads stores evidence photos and returns durable URLs. Uploads
// run synchronously before the state transition that requires them, so a
// failed upload aborts the transition.
package uploads

import "context"

// Uploader defines the interface for storing a blob and returning its URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name, contentType string) (string, error)
}
