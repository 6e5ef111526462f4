package filestorage

import (
	"context"
	"fmt"
	"io"
	"time"

	"pdf-review-server/internal/apperror"
	"pdf-review-server/internal/constant"
	"pdf-review-server/internal/util"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// AssetStorage owns the PDF bytes of a project, addressed by a generated
// object name. It knows nothing about projects or comments.
type AssetStorage interface {
	Store(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	Retrieve(ctx context.Context, objectName string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type MinioStorage struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
	logger      *zap.SugaredLogger
}

var _ AssetStorage = (*MinioStorage)(nil)

func NewMinioStorage(client *minio.Client, bucket string, maxFileSize int64, logger *zap.SugaredLogger) *MinioStorage {
	return &MinioStorage{
		client:      client,
		bucket:      bucket,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (ms *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := ms.client.BucketExists(ctx, ms.bucket)
	if err != nil {
		return err
	}

	if !exists {
		if err := ms.client.MakeBucket(ctx, ms.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return nil
}

// Store validates the declared content type and size, then uploads the
// bytes under a freshly generated object name. Names are never reused, even
// after the object is deleted.
func (ms *MinioStorage) Store(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	if contentType != constant.PDF_MIME_TYPE {
		return "", apperror.Validation("only PDF files are allowed", fmt.Errorf("unsupported content type %q", contentType))
	}
	if size <= 0 {
		return "", apperror.Validation("uploaded file is empty", nil)
	}
	if size > ms.maxFileSize {
		return "", apperror.Validation(fmt.Sprintf("file exceeds the maximum size of %d bytes", ms.maxFileSize), nil)
	}

	if err := ms.ensureBucket(ctx); err != nil {
		return "", apperror.Asset("failed to prepare storage bucket", err)
	}

	objectName, err := util.GenerateStoredPdfName()
	if err != nil {
		return "", apperror.Asset("failed to generate object name", err)
	}

	_, err = ms.client.PutObject(ctx, ms.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperror.Asset("failed to store file", err)
	}

	ms.logger.Debugf("Stored object %s (%d bytes)", objectName, size)

	return objectName, nil
}

func (ms *MinioStorage) Retrieve(ctx context.Context, objectName string) (io.ReadCloser, ObjectInfo, error) {
	object, err := ms.client.GetObject(ctx, ms.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, ms.translateObjectError(objectName, err)
	}

	// GetObject is lazy, Stat forces the first request and surfaces
	// missing objects here instead of on the first Read.
	stat, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, ObjectInfo{}, ms.translateObjectError(objectName, err)
	}

	return object, ObjectInfo{Size: stat.Size, ContentType: stat.ContentType}, nil
}

func (ms *MinioStorage) Delete(ctx context.Context, objectName string) error {
	if err := ms.client.RemoveObject(ctx, ms.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return ms.translateObjectError(objectName, err)
	}

	return nil
}

func (ms *MinioStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := ms.client.PresignedGetObject(ctx, ms.bucket, objectName, expiry, nil)
	if err != nil {
		return "", apperror.Asset("failed to generate file URL", err)
	}

	return u.String(), nil
}

func (ms *MinioStorage) translateObjectError(objectName string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return apperror.NotFound("file not found", err)
	}

	ms.logger.Errorf("Storage error for object %s: %v", objectName, err)

	return apperror.Asset("storage operation failed", err)
}
