package oss

import (
	"TikLite.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// InitMinio 按配置创建客户端，未配置endpoint时返回nil
func InitMinio() (*Storage, error) {
	c := config.ConfigInfo.Minio
	if c.Endpoint == "" {
		hlog.Warn("No minio configured, uploads are disabled")
		return nil, nil
	}
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", c.Endpoint, c.AccessKey)

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	hlog.Info("Connect Minio Success")
	return NewStorage(client, c.Bucket, c.Location, publicBase(c.PublicBaseUrl, c.Endpoint, c.UseSSL)), nil
}

func publicBase(configured, endpoint string, ssl bool) string {
	if configured != "" {
		return configured
	}
	if ssl {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
