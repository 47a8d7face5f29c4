package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/lingua-forge/internal/ai"
	"github.com/yourusername/lingua-forge/internal/components"
	"github.com/yourusername/lingua-forge/internal/template"
)

// ErrInvalid はジョブ作成リクエストの検証に失敗した場合に返されます。
var ErrInvalid = errors.New("invalid job request")

// Generator は生成AIからコンポーネント列を取得します。
type Generator interface {
	GenerateComponents(ctx context.Context, req ai.Request) ([]components.Component, error)
}

// Renderer はテンプレートとコンポーネント列からPDF成果物を生成します。
type Renderer interface {
	CreatePDF(ctx context.Context, handler *template.Handler, jobID, fileName string, comps []components.Component, debug bool) (string, error)
	DiscardJob(jobID string) error
}

// Manager はジョブレジストリを所有し、各ジョブを非同期に処理します。
// レジストリの変更は Manager のみが行います。
type Manager struct {
	mu        sync.RWMutex
	jobs      map[string]*Job
	templates *template.Manager
	generator Generator
	renderer  Renderer
	logger    *log.Logger
}

// NewManager は Manager を作成します。
func NewManager(templates *template.Manager, generator Generator, renderer Renderer, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		jobs:      make(map[string]*Job),
		templates: templates,
		generator: generator,
		renderer:  renderer,
		logger:    logger,
	}
}

// Create はリクエストを検証し、pending 状態のジョブを保存してから
// 処理ゴルーチンを起動し、保存した時点のスナップショットを即座に返します。
// 完了を待ちません。
func (m *Manager) Create(req CreateRequest) (Job, error) {
	if err := m.validateRequest(req); err != nil {
		return Job{}, err
	}

	// 参照先テンプレートの存在は同期的に確認する（不在ならジョブを作らない）
	if req.TemplateID != "" {
		if _, ok := m.templates.Get(req.TemplateID); !ok {
			return Job{}, template.ErrNotFound
		}
	}

	now := time.Now().UTC()
	job := &Job{
		ID:               uuid.NewString(),
		Status:           StatusPending,
		TemplateID:       req.TemplateID,
		OriginalLanguage: req.OriginalLanguage,
		TargetLanguage:   req.TargetLanguage,
		Level:            req.Level,
		Prompt:           req.Prompt,
		SkipAI:           req.SkipAI,
		Debug:            req.Debug,
		Components:       req.Components,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	snapshot := *job
	m.mu.Unlock()

	go m.processJob(job.ID)

	return snapshot, nil
}

func (m *Manager) validateRequest(req CreateRequest) error {
	if _, ok := Languages[req.OriginalLanguage]; !ok {
		return fmt.Errorf("%w: unknown original language %q", ErrInvalid, req.OriginalLanguage)
	}
	if _, ok := Languages[req.TargetLanguage]; !ok {
		return fmt.Errorf("%w: unknown target language %q", ErrInvalid, req.TargetLanguage)
	}
	if !validLevels[req.Level] {
		return fmt.Errorf("%w: unknown level %q", ErrInvalid, req.Level)
	}
	if req.TemplateID != "" {
		if _, err := uuid.Parse(req.TemplateID); err != nil {
			return fmt.Errorf("%w: templateId must be a UUID", ErrInvalid)
		}
	}
	if err := components.ValidateList(req.Components); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Get はジョブのスナップショットを返します。
func (m *Manager) Get(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// GetAll は保存されているすべてのジョブのスナップショットを返します。
func (m *Manager) GetAll() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		list = append(list, *job)
	}
	return list
}

// Delete はジョブを削除し、成果物ワークスペースをベストエフォートで片付けます。
// 存在しないIDの削除も成功として扱います。
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	_, existed := m.jobs[id]
	delete(m.jobs, id)
	m.mu.Unlock()

	if existed {
		if err := m.renderer.DiscardJob(id); err != nil {
			m.logger.Printf("failed to discard workspace job=%s: %v", id, err)
		}
	}
}

// update はジョブ1件をロック下で変更します。ステータス遷移は
// このメソッド経由でのみ行われるため、ジョブ単位では常に順序どおりに観測されます。
func (m *Manager) update(id string, mutate func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	mutate(job)
	job.UpdatedAt = time.Now().UTC()
}

func (m *Manager) markFailed(id, message string) {
	m.update(id, func(j *Job) {
		j.Status = StatusFailed
		j.Error = message
	})
}

// processJob はジョブ1件の処理を実行します。1ジョブにつき1回のみ実行され、
// リトライしません。エラーとパニックはジョブの failed 状態として記録され、
// 他のジョブやプロセス本体には波及しません。
func (m *Manager) processJob(id string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Printf("panic while processing job %s: %v", id, r)
			m.markFailed(id, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := m.runPipeline(id); err != nil {
		m.logger.Printf("job %s failed: %v", id, err)
		m.markFailed(id, err.Error())
	}
}

func (m *Manager) runPipeline(id string) error {
	snapshot, ok := m.Get(id)
	if !ok {
		// 処理開始前に削除された場合は何もしない
		return nil
	}

	name := fmt.Sprintf("%s - %s", Languages[snapshot.TargetLanguage], capitalize(snapshot.Level))
	fileName := strings.ReplaceAll(strings.ToLower(name), " ", "") + ".pdf"
	m.update(id, func(j *Job) {
		j.Status = StatusProcessing
		j.Name = name
		j.FileName = fileName
	})

	// テンプレートはここで一度だけ解決する。以降に削除されても
	// このレンダリングはスナップショットを保持しているため影響を受けない。
	handler, err := m.templates.Resolve(snapshot.TemplateID)
	if err != nil {
		return fmt.Errorf("template %s not found", snapshot.TemplateID)
	}

	comps := snapshot.Components
	if !snapshot.SkipAI {
		generated, err := m.generator.GenerateComponents(context.Background(), ai.Request{
			OriginalLanguage: snapshot.OriginalLanguage,
			TargetLanguage:   snapshot.TargetLanguage,
			Level:            snapshot.Level,
			Prompt:           snapshot.Prompt,
		})
		if err != nil {
			return err
		}
		if len(generated) == 0 {
			return errors.New("generation produced no usable components")
		}
		comps = append(append([]components.Component{}, comps...), generated...)
	}

	path, err := m.renderer.CreatePDF(context.Background(), handler, id, fileName, comps, snapshot.Debug)
	if err != nil {
		return err
	}

	m.update(id, func(j *Job) {
		j.Status = StatusCompleted
		j.FilePath = path
		j.Error = ""
	})
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
