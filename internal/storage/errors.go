package storage

import (
	"errors"
	"strings"

	"github.com/minio/minio-go/v7"
)

// minioErrorCodeIs 按 S3 错误码匹配 MinIO 响应错误。
func minioErrorCodeIs(err error, codes ...string) bool {
	var minioErr minio.ErrorResponse
	if !errors.As(err, &minioErr) {
		return false
	}
	got := strings.ToLower(strings.TrimSpace(minioErr.Code))
	for _, code := range codes {
		if got == code {
			return true
		}
	}
	return false
}

// IsNoSuchKey 判断错误是否表示导出产物对象不存在。
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	if minioErrorCodeIs(err, "nosuchkey", "notfound") {
		return true
	}
	// 网关/代理可能把错误包装成纯字符串。
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchkey") ||
		strings.Contains(lower, "specified key does not exist") ||
		strings.Contains(lower, "not found")
}

// IsNoSuchBucket 判断错误是否表示 Bucket 不存在。
func IsNoSuchBucket(err error) bool {
	if err == nil {
		return false
	}
	if minioErrorCodeIs(err, "nosuchbucket") {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchbucket") ||
		strings.Contains(lower, "specified bucket does not exist")
}
