package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 导出任务状态。
const (
	ExportStatusNone       = ""
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	// 管理员批量开户时置位，用户首次登录后必须改密。
	MustChangePassword bool `gorm:"default:false"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
	Drafts       []Draft  `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户的主简历记录：简历内容、模板选择与自定义项。
type Resume struct {
	gorm.Model
	Title          string         `gorm:"size:255"`
	TemplateID     string         `gorm:"size:64;default:chikorita"`
	Content        datatypes.JSON `gorm:"type:jsonb"`
	Customizations datatypes.JSON `gorm:"type:jsonb"`
	UserID         uint           `gorm:"index"`
	User           User           `gorm:"constraint:OnDelete:CASCADE"`
	// 最近一次导出产物在对象存储中的键与状态。
	ExportObjectKey string `gorm:"size:512"`
	ExportFormat    string `gorm:"size:16"`
	ExportStatus    string `gorm:"size:32"`
}

// Draft 表示编辑器的中间存档，可与主简历记录独立存在。
type Draft struct {
	gorm.Model
	Name           string         `gorm:"size:255"`
	TemplateID     string         `gorm:"size:64;default:chikorita"`
	Content        datatypes.JSON `gorm:"type:jsonb"`
	Customizations datatypes.JSON `gorm:"type:jsonb"`
	// Step 记录向导进度，恢复草稿时回到原位置。
	Step   int  `gorm:"default:0"`
	UserID uint `gorm:"index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
}
