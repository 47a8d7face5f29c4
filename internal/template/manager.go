package template

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound は指定されたテンプレートが存在しない場合に返されます。
var ErrNotFound = errors.New("template not found")

// ErrInvalid はテンプレート設定の検証に失敗した場合に返されます。
var ErrInvalid = errors.New("invalid template")

// Manager はテンプレートのインメモリレジストリを管理します。
type Manager struct {
	mu        sync.RWMutex
	templates map[string]Template
	fonts     *FontRegistry
	minSize   float64
	maxSize   float64
}

// NewManager は Manager を作成します。
func NewManager(fonts *FontRegistry, minFontSize, maxFontSize float64) *Manager {
	return &Manager{
		templates: make(map[string]Template),
		fonts:     fonts,
		minSize:   minFontSize,
		maxSize:   maxFontSize,
	}
}

// Create はリクエストを検証し、新しいテンプレートを保存して返します。
func (m *Manager) Create(req CreateRequest) (Template, error) {
	now := time.Now().UTC()
	tpl := Template{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Font:        req.Font,
		FontSize:    req.FontSize,
		Size:        req.Size,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 省略されたフィールドにはデフォルト値を適用する
	if tpl.Font == "" {
		tpl.Font = DefaultFont
	}
	if tpl.FontSize == 0 {
		tpl.FontSize = defaultFontSize
	}
	if tpl.Size == "" {
		tpl.Size = defaultSize
	}
	if req.Margins != nil {
		tpl.Margins = *req.Margins
	} else {
		tpl.Margins = Margins{Top: defaultMargin, Bottom: defaultMargin, Left: defaultMargin, Right: defaultMargin}
	}

	if err := m.validate(tpl); err != nil {
		return Template{}, err
	}

	m.mu.Lock()
	m.templates[tpl.ID] = tpl
	m.mu.Unlock()

	return tpl, nil
}

func (m *Manager) validate(tpl Template) error {
	if _, ok := m.fonts.Resolve(tpl.Font); !ok {
		return fmt.Errorf("%w: unknown font %q (available: %v)", ErrInvalid, tpl.Font, m.fonts.Names())
	}
	if tpl.FontSize < m.minSize || tpl.FontSize > m.maxSize {
		return fmt.Errorf("%w: font size %v out of range [%v, %v]", ErrInvalid, tpl.FontSize, m.minSize, m.maxSize)
	}
	if _, ok := pageSizes[tpl.Size]; !ok {
		return fmt.Errorf("%w: unknown page size %q", ErrInvalid, tpl.Size)
	}
	if tpl.Margins.Top < 0 || tpl.Margins.Bottom < 0 || tpl.Margins.Left < 0 || tpl.Margins.Right < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalid)
	}
	return nil
}

// Get はテンプレートを取得します。
func (m *Manager) Get(id string) (Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tpl, ok := m.templates[id]
	return tpl, ok
}

// GetAll は保存されているすべてのテンプレートを返します。
func (m *Manager) GetAll() []Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Template, 0, len(m.templates))
	for _, tpl := range m.templates {
		list = append(list, tpl)
	}
	return list
}

// Delete はテンプレートを削除します。存在しないIDは何もしません。
// 進行中のレンダリングは解決済みのスナップショットを保持しているため影響を受けません。
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.templates, id)
}

// Resolve はテンプレートIDをレンダリング用ハンドラーへ解決します。
// IDが空の場合はビルトインのデフォルトテンプレートを使用します。
func (m *Manager) Resolve(id string) (*Handler, error) {
	if id == "" {
		return newHandler(m.defaultTemplate(), m.fonts), nil
	}
	tpl, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return newHandler(tpl, m.fonts), nil
}

func (m *Manager) defaultTemplate() Template {
	return Template{
		Name:     "default",
		Font:     DefaultFont,
		FontSize: defaultFontSize,
		Margins:  Margins{Top: defaultMargin, Bottom: defaultMargin, Left: defaultMargin, Right: defaultMargin},
		Size:     defaultSize,
	}
}
