package template

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateHandler は POST /template のハンドラーを返します。
func CreateHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディが不正です: " + err.Error()})
			return
		}

		tpl, err := m.Create(req)
		if err != nil {
			if errors.Is(err, ErrInvalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "テンプレートの作成に失敗しました。"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": tpl.ID})
	}
}

// ListHandler は GET /template のハンドラーを返します。
func ListHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.GetAll())
	}
}

// GetHandler は GET /template/:id のハンドラーを返します。
func GetHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		tpl, found := m.Get(id)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "指定されたテンプレートは存在しません。"})
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

// DeleteHandler は DELETE /template/:id のハンドラーを返します。
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
