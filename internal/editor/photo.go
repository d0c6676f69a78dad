package editor

import (
	"encoding/base64"
	"fmt"
	"io"
	"time"
)

// 照片上传约束：仅 JPEG/PNG，上限 5 MB（闭区间）。
const (
	MaxPhotoBytes = 5 * 1024 * 1024

	photoFieldPath = "personalInfo.photo"

	successStatusTTL = 2 * time.Second
	errorStatusTTL   = 3 * time.Second
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// StatusKind 区分上传状态提示的类别。
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status 是自动过期的瞬态提示：校验失败 3 秒后自清，
// 成功 2 秒后自清。过期由读取方通过 Active 判断，无后台定时器。
type Status struct {
	Kind      StatusKind
	Message   string
	expiresAt time.Time
}

// Active 报告提示在 now 时刻是否仍应展示。
func (s Status) Active(now time.Time) bool {
	return s.Kind != StatusNone && now.Before(s.expiresAt)
}

// PhotoUploader 校验并接收照片文件，成功后把 data URL 形式的值
// 通过 CommitFunc 上报（路径固定为 personalInfo.photo）。
// 同一时刻只认最新一次上传：后发起的上传直接覆盖前一次的结果，
// 没有排队概念。
type PhotoUploader struct {
	commit CommitFunc
	now    func() time.Time

	status Status
	seq    uint64
}

// NewPhotoUploader 构造上传器；now 为 nil 时使用 time.Now。
func NewPhotoUploader(commit CommitFunc, now func() time.Time) *PhotoUploader {
	if now == nil {
		now = time.Now
	}
	return &PhotoUploader{commit: commit, now: now}
}

// Status 返回当前提示（可能已过期，由调用方用 Active 过滤）。
func (u *PhotoUploader) Status() Status { return u.status }

// ValidatePhoto 校验 MIME 类型与大小，失败返回带具体原因的错误。
func ValidatePhoto(contentType string, size int64) error {
	if !allowedPhotoTypes[contentType] {
		return fmt.Errorf("unsupported image type %q: only JPEG and PNG are accepted", contentType)
	}
	if size > MaxPhotoBytes {
		return fmt.Errorf("image is %d bytes, the limit is %d bytes (5 MB)", size, MaxPhotoBytes)
	}
	return nil
}

// Upload 读取文件内容并在校验通过后提交 data URL。
// 校验失败不触碰既有数据，只设置瞬态错误提示。
func (u *PhotoUploader) Upload(contentType string, size int64, r io.Reader) error {
	seq := u.nextSeq()

	if err := ValidatePhoto(contentType, size); err != nil {
		u.finish(seq, Status{
			Kind:      StatusError,
			Message:   err.Error(),
			expiresAt: u.now().Add(errorStatusTTL),
		})
		return err
	}

	// 多读一个字节探测声报大小与实际内容不符的情况。
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		err = fmt.Errorf("read image: %w", err)
		u.finish(seq, Status{
			Kind:      StatusError,
			Message:   err.Error(),
			expiresAt: u.now().Add(errorStatusTTL),
		})
		return err
	}
	if int64(len(data)) > MaxPhotoBytes {
		err = fmt.Errorf("image exceeds the %d byte (5 MB) limit", MaxPhotoBytes)
		u.finish(seq, Status{
			Kind:      StatusError,
			Message:   err.Error(),
			expiresAt: u.now().Add(errorStatusTTL),
		})
		return err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	if !u.isLatest(seq) {
		// 已被更新的上传取代，静默放弃。
		return nil
	}
	u.status = Status{
		Kind:      StatusSuccess,
		Message:   "photo updated",
		expiresAt: u.now().Add(successStatusTTL),
	}
	if u.commit != nil {
		u.commit(photoFieldPath, dataURL)
	}
	return nil
}

func (u *PhotoUploader) nextSeq() uint64 {
	u.seq++
	return u.seq
}

func (u *PhotoUploader) isLatest(seq uint64) bool {
	return seq == u.seq
}

func (u *PhotoUploader) finish(seq uint64, s Status) {
	if !u.isLatest(seq) {
		return
	}
	u.status = s
}
