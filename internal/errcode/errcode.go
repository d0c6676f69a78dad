// Package errcode 定义 WebSocket 通知里携带的业务错误码。
package errcode

// 约定：
// - 0：成功
// - 4xxx：业务可恢复错误（前端提示后可重试）
// - 5xxx：系统错误（导出等流程已中断）
const (
	OK              = 0
	ResourceMissing = 4004
	SystemError     = 5000
)
