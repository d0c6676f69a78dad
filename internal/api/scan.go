package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dutchcoders/go-clamd"
)

// errMaliciousFile 表示 ClamAV 判定文件有害。
var errMaliciousFile = errors.New("malicious file detected")

// scanWithClamd 通过 clamd 流式扫描上传内容。
// clamdAddr 为空表示部署中未启用病毒扫描，直接放行并留一条日志。
func scanWithClamd(logger *slog.Logger, clamdAddr string, r io.Reader) error {
	if clamdAddr == "" {
		logger.Warn("clamd not configured, skipping upload scan")
		return nil
	}

	clamdClient := clamd.NewClamd(clamdAddr)

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(r, abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return errMaliciousFile
		}
	}
	return nil
}
