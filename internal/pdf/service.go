package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/yourusername/lingua-forge/internal/components"
	"github.com/yourusername/lingua-forge/internal/template"
)

// Service はPDFの生成と成果物ワークスペースの管理を担います。
type Service struct {
	artifactDir string
}

// NewService は Service を作成します。
func NewService(artifactDir string) *Service {
	return &Service{artifactDir: artifactDir}
}

func (s *Service) workspaceFor(jobID string) string {
	return filepath.Join(s.artifactDir, jobID)
}

// CreatePDF はテンプレートとコンポーネント列からPDFを生成し、
// ジョブごとのワークスペースへ書き出してそのパスを返します。
// question コンポーネントが1件以上ある場合のみ、改ページして解答セクションを追加します。
func (s *Service) CreatePDF(ctx context.Context, handler *template.Handler, jobID, fileName string, comps []components.Component, debug bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := handler.NewDocument()
	if err != nil {
		return "", err
	}
	tpl := handler.Template()

	for _, c := range comps {
		RenderComponent(doc, tpl, c, debug)
	}

	questions := components.Questions(comps)
	if len(questions) > 0 {
		doc.AddPage()
		RenderComponent(doc, tpl, components.Component{
			Type:  components.TypeHeader,
			Text:  "Answers",
			Level: 2,
		}, false)
		for _, q := range questions {
			RenderAnswer(doc, tpl, q)
		}
	}

	if err := doc.Error(); err != nil {
		return "", fmt.Errorf("レンダリングに失敗しました: %w", err)
	}

	dir := s.workspaceFor(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ワークスペースの作成に失敗しました: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := doc.OutputFileAndClose(path); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("成果物の書き込みに失敗しました: %w", err)
	}

	// 書き出したPDFの整合性を確認してから完了とする
	if err := pdfapi.ValidateFile(path, nil); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("成果物の検証に失敗しました: %w", err)
	}

	return path, nil
}

// DiscardJob はジョブのワークスペースを削除します。
func (s *Service) DiscardJob(jobID string) error {
	if jobID == "" {
		return fmt.Errorf("jobID is required")
	}
	return os.RemoveAll(s.workspaceFor(jobID))
}
