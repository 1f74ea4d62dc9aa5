package util

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/SeakMengs/CertVault/internal/config"
	"github.com/minio/minio-go/v7"
)

func GetCertificateDirectoryPath(certificateId string) string {
	return fmt.Sprintf("certificates/%s", certificateId)
}

// ToCertificateObjectName builds the object key for one generated artifact,
// namespaced by certificate id so concurrent batches cannot collide.
func ToCertificateObjectName(certificateId string, filename string) string {
	return filepath.ToSlash(filepath.Join(GetCertificateDirectoryPath(certificateId), filepath.Base(filename)))
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	Bucket string
	S3     *minio.Client
}

// UploadBytesToS3 uploads an in-memory artifact under the given object name.
func UploadBytesToS3(ctx context.Context, data []byte, objectName string, contentType string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	info, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// PublicObjectURL builds the direct URL of an object in a public bucket.
func PublicObjectURL(cfg config.MinioConfig, bucket, objectName string) string {
	scheme := "http"
	if cfg.USE_SSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.ENDPOINT, bucket, objectName)
}

// DownloadS3Object fetches an object to a local path, used when bundling
// artifacts into a zip.
func DownloadS3Object(ctx context.Context, s3 *minio.Client, bucket, objectName, localPath string) error {
	if bucket == "" || objectName == "" || localPath == "" {
		return fmt.Errorf("bucket, object name, and local path cannot be empty: bucket=%s, object=%s, localPath=%s", bucket, objectName, localPath)
	}

	return s3.FGetObject(ctx, bucket, objectName, localPath, minio.GetObjectOptions{})
}
