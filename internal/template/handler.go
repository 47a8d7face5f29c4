package template

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Handler はテンプレート設定のスナップショットを保持し、
// その設定でドキュメントを開きます。レンダリング1回の間だけ使用されます。
type Handler struct {
	tpl   Template
	fonts *FontRegistry
}

func newHandler(tpl Template, fonts *FontRegistry) *Handler {
	return &Handler{tpl: tpl, fonts: fonts}
}

// Template はスナップショットを返します。
func (h *Handler) Template() Template {
	return h.tpl
}

// NewDocument はテンプレート設定に従って新しいPDFドキュメントを開きます。
// フォント名が解決できない場合はエラーを返します。
func (h *Handler) NewDocument() (*gofpdf.Fpdf, error) {
	font, ok := h.fonts.Resolve(h.tpl.Font)
	if !ok {
		return nil, fmt.Errorf("font %q not found", h.tpl.Font)
	}

	size, ok := pageSizes[h.tpl.Size]
	if !ok {
		return nil, fmt.Errorf("page size %q not supported", h.tpl.Size)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	doc.SetMargins(h.tpl.Margins.Left, h.tpl.Margins.Top, h.tpl.Margins.Right)
	doc.SetAutoPageBreak(true, h.tpl.Margins.Bottom)

	font.Install(doc)
	doc.SetFont(font.Family, "", h.tpl.FontSize)
	doc.AddPage()

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, nil
}
