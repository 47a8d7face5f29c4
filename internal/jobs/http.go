package jobs

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/lingua-forge/internal/template"
)

// CreateHandler は POST /pdf のハンドラーを返します。
func CreateHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディが不正です: " + err.Error()})
			return
		}

		job, err := m.Create(req)
		if err != nil {
			switch {
			case errors.Is(err, template.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "指定されたテンプレートは存在しません。"})
			case errors.Is(err, ErrInvalid):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "ジョブの作成に失敗しました。"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": job.ID})
	}
}

// ListHandler は GET /pdf のハンドラーを返します。
func ListHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.GetAll())
	}
}

// GetHandler は GET /pdf/:id のハンドラーを返します。
func GetHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		job, found := m.Get(id)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "指定されたジョブは存在しません。"})
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

// DownloadHandler は GET /pdf/:id/download のハンドラーを返します。
// ダウンロードは1回限りで、読み出しに成功した成果物は即座に削除されます。
// 2回目以降の要求はジョブが completed のままでも 404 になります。
func DownloadHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		job, found := m.Get(id)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "指定されたジョブは存在しません。"})
			return
		}

		if job.Status != StatusCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "PDFはまだダウンロードできません。"})
			return
		}

		if job.FilePath == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "PDFファイルが見つかりません。"})
			return
		}

		data, err := os.ReadFile(job.FilePath)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "PDFファイルが見つかりません。"})
			return
		}
		if len(data) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "PDFファイルが空です。"})
			return
		}
		if !mimetype.Detect(data).Is("application/pdf") {
			c.JSON(http.StatusNotFound, gin.H{"error": "PDFファイルが破損しています。"})
			return
		}

		m.logger.Printf("downloading job=%s size=%d path=%s", job.ID, len(data), job.FilePath)

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", job.FileName))
		c.Header("Content-Length", strconv.Itoa(len(data)))
		c.Data(http.StatusOK, "application/pdf", data)

		if err := os.Remove(job.FilePath); err != nil {
			m.logger.Printf("failed to remove artifact job=%s: %v", job.ID, err)
		}
	}
}

// DeleteHandler は DELETE /pdf/:id のハンドラーを返します。
// 存在しないIDの削除も成功として扱います。
func DeleteHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		m.Delete(id)
		c.Status(http.StatusNoContent)
	}
}

// parseID はパスパラメータのUUIDを検証します。不正な場合は400を返します。
func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IDはUUID形式で指定してください。"})
		return "", false
	}
	return id, true
}
