// Package pdf はコンポーネント列からページ分割されたPDFを生成します。
package pdf

import (
	"encoding/json"

	"github.com/jung-kurt/gofpdf"

	"github.com/yourusername/lingua-forge/internal/components"
	"github.com/yourusername/lingua-forge/internal/template"
)

// headerScale はヘッダーレベルごとの基準フォントサイズに対する倍率です。
// レベル1が最大で、レベル6は下限の倍率にフォールバックします。
var headerScale = map[int]float64{
	1: 2.0,
	2: 1.65,
	3: 1.35,
	4: 1.15,
	5: 1.0,
	6: 0.85,
}

const (
	lineHeightFactor = 1.2
	hintScale        = 0.65
	debugScale       = 0.65
	answerBoxLines   = 2.5
)

func lineHeight(fontSize float64) float64 {
	return fontSize * lineHeightFactor
}

func alignStr(align string) string {
	switch align {
	case components.AlignCenter:
		return "C"
	case components.AlignRight:
		return "R"
	default:
		return "L"
	}
}

// RenderComponent は1コンポーネントをドキュメントへ描画します。
// debug が真の場合、描画直後にコンポーネントのJSON表現を併記します。
func RenderComponent(doc *gofpdf.Fpdf, tpl template.Template, c components.Component, debug bool) {
	base := tpl.FontSize

	switch c.Type {
	case components.TypeNewPage:
		doc.AddPage()

	case components.TypeSpacing:
		doc.Ln(lineHeight(base) * c.Height)

	case components.TypeHeader:
		renderHeader(doc, base, c)

	case components.TypeText:
		doc.MultiCell(0, lineHeight(base), c.Text, "", "L", false)
		doc.Ln(lineHeight(base))

	case components.TypeTable:
		renderTable(doc, base, c)

	case components.TypeQuestion:
		renderQuestion(doc, base, c)
	}

	if debug {
		renderDebug(doc, base, c)
	}
}

func renderHeader(doc *gofpdf.Fpdf, base float64, c components.Component) {
	size := base * headerScale[c.Level]
	doc.SetFontSize(size)
	doc.MultiCell(0, lineHeight(size), c.Text, "", alignStr(c.Align), false)
	doc.SetFontSize(base)

	// レベル1ヘッダーのみナビゲーション用のしおりを登録する
	if c.Level == 1 {
		doc.Bookmark(c.Text, 0, -1)
	}

	doc.Ln(lineHeight(base))
}

func renderTable(doc *gofpdf.Fpdf, base float64, c components.Component) {
	cols := len(c.Rows[0])
	if len(c.Headers) > 0 {
		cols = len(c.Headers)
	}

	left, _, right, _ := doc.GetMargins()
	pageWidth, _ := doc.GetPageSize()
	colWidth := (pageWidth - left - right) / float64(cols)
	rowHeight := lineHeight(base)

	prevWidth := doc.GetLineWidth()

	// ヘッダー行は太い黒の下罫線
	if len(c.Headers) > 0 {
		doc.SetLineWidth(2)
		doc.SetDrawColor(0, 0, 0)
		for _, h := range c.Headers {
			doc.CellFormat(colWidth, rowHeight, h, "B", 0, "L", false, 0, "")
		}
		doc.Ln(rowHeight)
	}

	// 本体行は細いグレーの下罫線
	doc.SetLineWidth(1)
	doc.SetDrawColor(170, 170, 170)
	for _, row := range c.Rows {
		for _, cell := range row {
			doc.CellFormat(colWidth, rowHeight, cell, "B", 0, "L", false, 0, "")
		}
		doc.Ln(rowHeight)
	}

	doc.SetLineWidth(prevWidth)
	doc.SetDrawColor(0, 0, 0)
	doc.Ln(rowHeight)
}

func renderQuestion(doc *gofpdf.Fpdf, base float64, c components.Component) {
	rowHeight := lineHeight(base)

	doc.MultiCell(0, rowHeight, c.Text, "", "L", false)
	doc.Ln(rowHeight * 0.25)

	if c.Hint != "" {
		hintSize := base * hintScale
		doc.SetFontSize(hintSize)
		doc.MultiCell(0, lineHeight(hintSize), c.Hint, "", "L", false)
		doc.SetFontSize(base)
		doc.Ln(rowHeight * 0.25)
	}

	// 記入用の網掛けボックス。回答はここでは表示しない。
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(0, rowHeight*answerBoxLines, "", "", 1, "L", true, 0, "")
	doc.Ln(rowHeight)
}

// RenderAnswer は解答ページ用に、設問文と実際の回答を網掛けボックスで描画します。
func RenderAnswer(doc *gofpdf.Fpdf, tpl template.Template, q components.Component) {
	base := tpl.FontSize
	rowHeight := lineHeight(base)

	doc.MultiCell(0, rowHeight, q.Text, "", "L", false)
	doc.Ln(rowHeight * 0.25)

	doc.SetFillColor(240, 240, 240)
	doc.MultiCell(0, rowHeight, q.Answer, "", "L", true)
	doc.Ln(rowHeight)
}

func renderDebug(doc *gofpdf.Fpdf, base float64, c components.Component) {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return
	}

	debugSize := base * debugScale
	doc.SetFontSize(debugSize)
	doc.MultiCell(0, lineHeight(debugSize), string(raw), "1", "L", false)
	doc.SetFontSize(base)
	doc.Ln(lineHeight(base))
}
