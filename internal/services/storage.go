package services

import (
	"context"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/scolaris/scolaris-api/internal/config"
)

var logoExtensions = []string{".png", ".jpg", ".jpeg", ".svg"}

// LogoStorage keeps institution logo assets in MinIO. During imports it
// resolves a natural code to a stored object path by scanning the local
// logo directory; the API serves the objects back out.
type LogoStorage struct {
	client *minio.Client
	bucket string
	dir    string
}

func NewLogoStorage(cfg *config.Config) (*LogoStorage, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &LogoStorage{
		client: client,
		bucket: cfg.MinIOBucket,
		dir:    cfg.LogoDir,
	}, nil
}

// Resolve looks for <code>.<ext> in the logo directory, uploads it and
// returns the object path. A missing file is not an error; upload failures
// are logged and the institution simply keeps no logo.
func (s *LogoStorage) Resolve(code string) string {
	for _, ext := range logoExtensions {
		local := filepath.Join(s.dir, code+ext)
		if _, err := os.Stat(local); err != nil {
			continue
		}

		objectName := "institutions/" + code + ext
		if err := s.upload(local, objectName); err != nil {
			log.Printf("Warning: failed to upload logo for %s: %v", code, err)
			return ""
		}
		return objectName
	}
	return ""
}

func (s *LogoStorage) upload(localPath, objectName string) error {
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := context.Background()
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Download streams a stored logo object.
func (s *LogoStorage) Download(objectName string) (*minio.Object, error) {
	ctx := context.Background()
	return s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
}

// Delete removes a stored logo object.
func (s *LogoStorage) Delete(objectName string) error {
	ctx := context.Background()
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
