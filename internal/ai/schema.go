package ai

import "google.golang.org/genai"

// componentListSchema は生成AIに要求するレスポンスのJSONスキーマです。
// バリアントごとのスキーマをユニオンで表現できないため、
// 全フィールドを持つ単一オブジェクトとして宣言し、受信後に厳密に検証します。
var componentListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type": {
				Type:        genai.TypeString,
				Enum:        []string{"header", "text", "table", "newPage", "question", "spacing"},
				Description: "The component type.",
			},
			"text": {
				Type:        genai.TypeString,
				Description: "The text content for header, text and question components.",
			},
			"align": {
				Type:        genai.TypeString,
				Enum:        []string{"left", "center", "right"},
				Description: "Text alignment for header components. Defaults to left.",
			},
			"level": {
				Type:        genai.TypeInteger,
				Description: "Header level 1-6, where 1 is the largest and most prominent.",
			},
			"headers": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Optional column headers for table components.",
			},
			"rows": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				Description: "Table data as a 2-D array. All rows must have the same number of cells.",
			},
			"height": {
				Type:        genai.TypeNumber,
				Description: "Vertical space for spacing components, in multiples of the current line height.",
			},
			"id": {
				Type:        genai.TypeString,
				Description: "A short, descriptive identifier for question components (e.g. 'hello_translation').",
			},
			"hint": {
				Type:        genai.TypeString,
				Description: "Optional guidance shown below the question text.",
			},
			"answer": {
				Type:        genai.TypeString,
				Description: "The actual answer value for question components, not placeholder text. Required for every question.",
			},
		},
		Required: []string{"type"},
	},
}
