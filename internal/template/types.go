// Package template はPDFテンプレートの管理とドキュメント生成を提供します。
package template

import (
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Margins はページ余白（ポイント単位）を表します。
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Template は名前付きの外観設定を表します。作成後は不変です。
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Font        string    `json:"font"`
	FontSize    float64   `json:"fontSize"`
	Margins     Margins   `json:"margins"`
	Size        string    `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest はテンプレート作成リクエストのボディです。
type CreateRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description" binding:"required,max=1024"`
	Font        string   `json:"font"`
	FontSize    float64  `json:"fontSize"`
	Margins     *Margins `json:"margins"`
	Size        string   `json:"size"`
}

// pageSizes は対応するページサイズ（ポイント単位）です。
var pageSizes = map[string]gofpdf.SizeType{
	"A4": {Wd: 595.28, Ht: 841.89},
	"A3": {Wd: 841.89, Ht: 1190.55},
	"A2": {Wd: 1190.55, Ht: 1683.78},
	"A1": {Wd: 1683.78, Ht: 2383.94},
	"A0": {Wd: 2383.94, Ht: 3370.39},
}

const (
	defaultFontSize = 12
	defaultMargin   = 50
	defaultSize     = "A4"
)
