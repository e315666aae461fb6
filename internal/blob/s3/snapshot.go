package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotPartSize is the upload part size for yearly documents, which
// can run to several megabytes. The S3 minimum part size is 5 MiB.
const snapshotPartSize int64 = 5 * 1024 * 1024

// SnapshotWriter uploads raw source documents fetched during ingestion,
// keyed by fetch date. Old snapshots are never deleted here; retention
// is the bucket's concern.
type SnapshotWriter struct {
	client *s3.Client
	bucket string
}

// NewSnapshotWriter creates a SnapshotWriter uploading to the given
// client's bucket.
func NewSnapshotWriter(c *Client) *SnapshotWriter {
	return &SnapshotWriter{
		client: c.S3(),
		bucket: c.Bucket(),
	}
}

// Put uploads one raw document under snapshots/<year>/<date>.xml. The
// multipart uploader splits large yearly documents into parts and
// uploads them concurrently.
func (w *SnapshotWriter) Put(ctx context.Context, fetchedAt time.Time, doc []byte) error {
	path := snapshotPath(fetchedAt)

	uploader := manager.NewUploader(w.client, func(u *manager.Uploader) {
		u.PartSize = snapshotPartSize
	})

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/xml"),
	})
	if err != nil {
		return fmt.Errorf("s3blob: upload snapshot %s: %w", path, err)
	}
	return nil
}

// snapshotPath builds the object key for a snapshot, partitioned by
// fetch year:
//
//	snapshots/2025/2025-09-18.xml
func snapshotPath(fetchedAt time.Time) string {
	return fmt.Sprintf("snapshots/%s/%s.xml",
		fetchedAt.Format("2006"), fetchedAt.Format("2006-01-02"))
}
