package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Pooyash1998/studyplanner/internal/service"
	"github.com/Pooyash1998/studyplanner/pkg/response"
)

// ExportHandler 导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export 导出当前排布
// GET /api/v1/export?format=md|png|pdf|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportMarkdown)

	file, err := h.exportSvc.Export(c.Request.Context(), format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Content.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, 26001, "不支持的导出格式，可选 md / png / pdf / xlsx")
	case errors.Is(err, service.ErrExportFailed):
		response.Error(c, http.StatusInternalServerError, 26002, "生成导出文件失败")
	default:
		response.InternalError(c)
	}
}
