package jobs

import (
	"time"

	"github.com/yourusername/lingua-forge/internal/components"
)

// Status はジョブの実行状態を表します。
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// 受け付ける習熟度レベルです。
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var validLevels = map[string]bool{
	LevelBeginner:     true,
	LevelIntermediate: true,
	LevelAdvanced:     true,
}

// Job は1件のPDF生成リクエストとその結果を表します。
// FilePath は completed のときのみ、Error は failed のときのみ設定されます。
type Job struct {
	ID               string                 `json:"id"`
	Status           Status                 `json:"status"`
	TemplateID       string                 `json:"templateId,omitempty"`
	OriginalLanguage string                 `json:"originalLanguage"`
	TargetLanguage   string                 `json:"targetLanguage"`
	Level            string                 `json:"level"`
	Prompt           string                 `json:"prompt,omitempty"`
	SkipAI           bool                   `json:"skipAi"`
	Debug            bool                   `json:"debug"`
	Components       []components.Component `json:"-"`
	Name             string                 `json:"name,omitempty"`
	FileName         string                 `json:"fileName,omitempty"`
	FilePath         string                 `json:"-"`
	Error            string                 `json:"error,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// CreateRequest は POST /pdf のボディです。
type CreateRequest struct {
	TemplateID       string                 `json:"templateId"`
	OriginalLanguage string                 `json:"originalLanguage" binding:"required"`
	TargetLanguage   string                 `json:"targetLanguage" binding:"required"`
	Level            string                 `json:"level" binding:"required"`
	Prompt           string                 `json:"prompt"`
	SkipAI           bool                   `json:"skipAi"`
	Debug            bool                   `json:"debug"`
	Components       []components.Component `json:"components"`
}
