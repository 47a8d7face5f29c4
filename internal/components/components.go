// Package components はPDFを構成するコンポーネントのデータモデルと検証を提供します。
package components

import (
	"fmt"
	"strings"
)

// Type はコンポーネントの種別を表します。
type Type string

const (
	TypeHeader   Type = "header"
	TypeText     Type = "text"
	TypeTable    Type = "table"
	TypeNewPage  Type = "newPage"
	TypeQuestion Type = "question"
	TypeSpacing  Type = "spacing"
)

// 配置指定に使用できる値です。
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Component はPDFに描画される1単位を表すタグ付きバリアントです。
// Type フィールドで種別を判別し、種別ごとに有効なフィールドが異なります。
type Component struct {
	Type Type `json:"type"`

	// header / text / question 共通
	Text string `json:"text,omitempty"`

	// header
	Align string `json:"align,omitempty"`
	Level int    `json:"level,omitempty"`

	// table
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`

	// spacing（現在行高を1とした倍率）
	Height float64 `json:"height,omitempty"`

	// question
	ID     string `json:"id,omitempty"`
	Hint   string `json:"hint,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// Validate はコンポーネント単体の整合性を検証します。
func (c Component) Validate() error {
	switch c.Type {
	case TypeHeader:
		if c.Text == "" {
			return fmt.Errorf("header component requires text")
		}
		if c.Level < 1 || c.Level > 6 {
			return fmt.Errorf("header level must be between 1 and 6 (got %d)", c.Level)
		}
		switch c.Align {
		case "", AlignLeft, AlignCenter, AlignRight:
		default:
			return fmt.Errorf("invalid header align: %q", c.Align)
		}
	case TypeText:
		if c.Text == "" {
			return fmt.Errorf("text component requires text")
		}
	case TypeTable:
		if len(c.Rows) == 0 {
			return fmt.Errorf("table component requires at least one row")
		}
		width := len(c.Rows[0])
		if len(c.Headers) > 0 {
			width = len(c.Headers)
		}
		if width == 0 {
			return fmt.Errorf("table rows must not be empty")
		}
		for i, row := range c.Rows {
			if len(row) != width {
				return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), width)
			}
		}
	case TypeNewPage:
		// フィールドなし
	case TypeSpacing:
		if c.Height <= 0 {
			return fmt.Errorf("spacing height must be positive (got %v)", c.Height)
		}
	case TypeQuestion:
		if c.ID == "" {
			return fmt.Errorf("question component requires id")
		}
		if c.Text == "" {
			return fmt.Errorf("question component requires text")
		}
		if strings.TrimSpace(c.Answer) == "" {
			return fmt.Errorf("question %q requires a non-empty answer", c.ID)
		}
	default:
		return fmt.Errorf("unknown component type: %q", c.Type)
	}
	return nil
}

// IsQuestion はコンポーネントが question であれば true を返します。
func (c Component) IsQuestion() bool {
	return c.Type == TypeQuestion
}

// ValidateList はコンポーネント列全体を検証します。
func ValidateList(list []Component) error {
	for i, c := range list {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
	}
	return nil
}

// FilterGenerated は生成AIの出力を信頼できる入力へ変換します。
// 回答が空白のみの question は除外し、残りを厳密に再検証します。
// 再検証に失敗した場合は除外ではなくエラーを返します。
func FilterGenerated(list []Component) ([]Component, error) {
	filtered := make([]Component, 0, len(list))
	for _, c := range list {
		if c.IsQuestion() && strings.TrimSpace(c.Answer) == "" {
			continue
		}
		filtered = append(filtered, c)
	}
	if err := ValidateList(filtered); err != nil {
		return nil, fmt.Errorf("generated components failed validation: %w", err)
	}
	return filtered, nil
}

// Questions はコンポーネント列から question のみを抽出します。
func Questions(list []Component) []Component {
	var questions []Component
	for _, c := range list {
		if c.IsQuestion() {
			questions = append(questions, c)
		}
	}
	return questions
}
