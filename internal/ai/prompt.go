package ai

import "fmt"

// buildPrompt は言語ペア・レベル・任意の自由入力から生成AIへの指示文を構築します。
func buildPrompt(req Request) string {
	extra := ""
	if req.Prompt != "" {
		extra = fmt.Sprintf("The prompt is: %s", req.Prompt)
	}
	return fmt.Sprintf(
		"Generate language learning material in %s for the following language: %s and level: %s. %s. "+
			"When creating question components, you MUST include the answer field with the correct answer. "+
			"Do not create questions without answers. "+
			"Each question should be self-contained with both the question text and its corresponding answer.",
		req.OriginalLanguage, req.TargetLanguage, req.Level, extra,
	)
}
