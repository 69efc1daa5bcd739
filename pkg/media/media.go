// Package media turns raw uploaded bytes into a stored content URL:
// normalize (bounded dimensions, recompressed JPEG) then upload to object
// storage. The rest of the system only sees the Uploader capability.
package media

import (
	"bytes"
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxDimension = 800
	jpegQuality  = 80
)

// Uploader maps processed bytes to a publicly reachable content URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// Normalize decodes an uploaded image, fits it inside maxDimension on both
// axes and re-encodes it as JPEG. Non-image bytes fail decoding.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > maxDimension || img.Bounds().Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// GCSUploader stores media in a Google Cloud Storage bucket.
type GCSUploader struct {
	bucket *storage.BucketHandle
}

// NewGCSUploader creates a new GCSUploader over the given bucket.
func NewGCSUploader(bucket *storage.BucketHandle) *GCSUploader {
	return &GCSUploader{bucket: bucket}
}

// Upload writes the bytes to the bucket under a fresh object name and
// returns the public URL.
func (u *GCSUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	name := "posts/" + primitive.NewObjectID().Hex() + ".jpg"
	w := u.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket.BucketName(), name), nil
}
