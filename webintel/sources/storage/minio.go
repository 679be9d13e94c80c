package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"webintel/webintel/config"
	"webintel/webintel/utils/types"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
)

// PageArchive keeps the extracted content of every analyzed page in an
// S3-compatible bucket so analyses can be audited later.
type PageArchive struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

func NewPageArchive(ctx context.Context, cfg config.Config) (*PageArchive, error) {
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOUseSSL,
		},
	)
	if err != nil {
		return nil, eris.Wrap(err, "minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, eris.Wrapf(err, "check bucket %s", cfg.MinIOBucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, eris.Wrapf(err, "create bucket %s", cfg.MinIOBucket)
		}
	}
	return &PageArchive{client: client, bucket: cfg.MinIOBucket, now: time.Now}, nil
}

// PageKey hashes the URL so the object name is free of special characters.
func PageKey(url string) string {
	return path.Join("pages", fmt.Sprintf("%x.json", md5.Sum([]byte(url))))
}

func encodePage(url string, content *types.ExtractedContent, at time.Time) ([]byte, error) {
	return json.Marshal(types.ArchivedPage{
		URL:              url,
		ExtractedContent: *content,
		Timestamp:        at.UTC(),
	})
}

// UploadPage stores content under PageKey(url) and returns the key.
func (a *PageArchive) UploadPage(ctx context.Context, url string, content *types.ExtractedContent) (string, error) {
	key := PageKey(url)
	data, err := encodePage(url, content, a.now())
	if err != nil {
		return "", eris.Wrap(err, "encode page")
	}

	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", eris.Wrapf(err, "upload %s", key)
	}
	return key, nil
}

func (a *PageArchive) GetPage(ctx context.Context, url string) (*types.ArchivedPage, error) {
	key := PageKey(url)
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, eris.Wrapf(err, "get %s", key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", key)
	}
	var page types.ArchivedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, eris.Wrapf(err, "decode %s", key)
	}
	return &page, nil
}
