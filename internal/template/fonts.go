package template

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// DefaultFont はテンプレートがフォントを指定しない場合に使用される名前です。
const DefaultFont = "helvetica"

// Font は登録済みフォント1件を表します。
// ビルトインフォントはファイル不要、それ以外はTTFファイルから読み込みます。
type Font struct {
	Name    string // シンボリック名（小文字）
	Family  string // gofpdfへ渡すファミリ名
	Path    string // TTFファイルのパス（ビルトインの場合は空）
	Builtin bool
}

// Install はドキュメントへフォントを登録します。ビルトインは登録不要です。
func (f Font) Install(doc *gofpdf.Fpdf) {
	if f.Builtin {
		return
	}
	doc.AddUTF8Font(f.Family, "", f.Path)
}

// FontRegistry はシンボリックなフォント名を描画可能なフォントへ解決します。
type FontRegistry struct {
	fonts map[string]Font
}

// NewFontRegistry はビルトインフォントと、dir 配下の *.ttf を登録した
// レジストリを作成します。dir が存在しない場合はビルトインのみ登録されます。
func NewFontRegistry(dir string) (*FontRegistry, error) {
	fonts := map[string]Font{
		"helvetica": {Name: "helvetica", Family: "Helvetica", Builtin: true},
		"times":     {Name: "times", Family: "Times", Builtin: true},
		"courier":   {Name: "courier", Family: "Courier", Builtin: true},
	}

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".ttf" {
				continue
			}
			name := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
			fonts[name] = Font{
				Name:   name,
				Family: name,
				Path:   filepath.Join(dir, entry.Name()),
			}
		}
	}

	return &FontRegistry{fonts: fonts}, nil
}

// Resolve はフォント名を解決します。
func (r *FontRegistry) Resolve(name string) (Font, bool) {
	font, ok := r.fonts[strings.ToLower(name)]
	return font, ok
}

// Names は登録済みフォント名の一覧をソート済みで返します。
func (r *FontRegistry) Names() []string {
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
