package oss

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"TikLite.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
)

const (
	codeBucketOwned  = "BucketAlreadyOwnedByYou"
	codeBucketExists = "BucketAlreadyExists"
)

// Storage 单个公共读存储桶
type Storage struct {
	client   *minio.Client
	bucket   string
	location string
	baseURL  string
}

func NewStorage(client *minio.Client, bucket, location, baseURL string) *Storage {
	if bucket == "" {
		bucket = constants.VideoBucket
	}
	if location == "" {
		location = "us-east-1"
	}
	return &Storage{
		client:   client,
		bucket:   bucket,
		location: location,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *Storage) Bucket() string { return s.bucket }

// EnsureBucket 不存在则创建并设置公共读，重复调用和并发创建都视为成功
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.location})
		if err != nil && !isBucketTaken(err) {
			return fmt.Errorf("create bucket error: %w", err)
		}
		if err == nil {
			hlog.CtxInfof(ctx, "Created bucket: %s", s.bucket)
		}
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, publicReadPolicy(s.bucket)); err != nil {
		return fmt.Errorf("set bucket policy error: %w", err)
	}
	return nil
}

func isBucketTaken(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == codeBucketOwned || code == codeBucketExists
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// PutObject 上传并返回公共URL
func (s *Storage) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s error: %w", objectName, err)
	}
	return s.PublicURL(objectName), nil
}

// FPutObject 上传本地文件并返回公共URL
func (s *Storage) FPutObject(ctx context.Context, objectName, path, contentType string) (string, error) {
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, path, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put file %s error: %w", objectName, err)
	}
	return s.PublicURL(objectName), nil
}

func (s *Storage) RemoveObject(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

func (s *Storage) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)
}

// ObjectNameFromURL 反解出对象名，非本桶URL返回空串
func (s *Storage) ObjectNameFromURL(url string) string {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// VideoObjectName <毫秒时间戳>-<随机串>.mp4
func VideoObjectName(now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), randomSuffix(7), constants.VideoObjectSuffix)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
