// Package ai は生成AIを呼び出してPDFコンポーネントを生成します。
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/yourusername/lingua-forge/internal/components"
)

// ErrNoContent は生成AIが空の出力を返した場合に返されます。
var ErrNoContent = errors.New("ai returned no content")

// Request は1回の生成呼び出しに渡すフィールドです。
type Request struct {
	OriginalLanguage string
	TargetLanguage   string
	Level            string
	Prompt           string
}

// textGenerator は生成AIクライアントを抽象化します。テストで差し替えます。
type textGenerator interface {
	generateJSON(ctx context.Context, model, prompt string) (string, error)
}

// Manager は生成AI呼び出しとその結果の検証を担います。
type Manager struct {
	mu     sync.RWMutex
	model  string
	client textGenerator
}

// NewManager は Gemini クライアントを初期化して Manager を作成します。
// APIキーが空の場合、生成呼び出しは常にエラーになります（skipAiジョブのみ動作）。
func NewManager(ctx context.Context, apiKey, model string) (*Manager, error) {
	if apiKey == "" {
		return &Manager{model: model, client: disabledClient{}}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Manager{model: model, client: &geminiClient{client: client}}, nil
}

// SetModel は使用するモデル名を切り替えます。
func (m *Manager) SetModel(model string) {
	m.mu.Lock()
	m.model = model
	m.mu.Unlock()
}

// GenerateComponents は指示文を構築して生成AIを呼び出し、
// 返却されたJSONを検証済みのコンポーネント列へ変換します。
// リトライは行いません（1回のみ）。
func (m *Manager) GenerateComponents(ctx context.Context, req Request) ([]components.Component, error) {
	m.mu.RLock()
	model := m.model
	m.mu.RUnlock()

	text, err := m.client.generateJSON(ctx, model, buildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	var list []components.Component
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("failed to parse generated JSON: %w", err)
	}

	// AIの出力は信頼できないため、空回答の質問を除外してから厳密に再検証する
	return components.FilterGenerated(list)
}

type geminiClient struct {
	client *genai.Client
}

func (g *geminiClient) generateJSON(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   componentListSchema,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

type disabledClient struct{}

func (disabledClient) generateJSON(context.Context, string, string) (string, error) {
	return "", errors.New("GEMINI_API_KEY is not configured")
}
