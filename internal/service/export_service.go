package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/planner"
)

// ── 导出模块业务错误 ──

var (
	ErrExportFormat = errors.New("不支持的导出格式")
	ErrExportFailed = errors.New("生成导出文件失败")
)

// 导出格式
const (
	ExportMarkdown = "md"
	ExportPNG      = "png"
	ExportPDF      = "pdf"
	ExportXLSX     = "xlsx"
)

// ExportFile 导出结果
type ExportFile struct {
	Content     *bytes.Buffer
	Filename    string
	ContentType string
}

// ExportService 导出业务接口
//
// 以当前排布生成文件，由 Handler 设置响应头后写出：
//   - md: 每个学期一个二级标题，每个模块一行
//   - png: 看板栅格图（未分配列 + 各学期列）
//   - pdf: png 铺满一页 A4 横向
//   - xlsx: 每个模块一行
type ExportService interface {
	Export(ctx context.Context, format string) (*ExportFile, error)
}

type exportService struct {
	ws     *Workspace
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(ws *Workspace, logger *zap.Logger) ExportService {
	return &exportService{ws: ws, logger: logger}
}

func (s *exportService) Export(_ context.Context, format string) (*ExportFile, error) {
	var board *planner.Board
	s.ws.Read(func(b *planner.Board) {
		board = b.Clone()
	})

	var (
		buf         *bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case ExportMarkdown:
		buf, contentType = renderMarkdown(board), "text/markdown; charset=utf-8"
	case ExportPNG:
		buf, err = renderPNG(board)
		contentType = "image/png"
	case ExportPDF:
		buf, err = renderPDF(board)
		contentType = "application/pdf"
	case ExportXLSX:
		buf, err = renderXLSX(board)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: %q", ErrExportFormat, format)
	}
	if err != nil {
		s.logger.Error("导出失败", zap.String("format", format), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return &ExportFile{
		Content:     buf,
		Filename:    "study-plan." + format,
		ContentType: contentType,
	}, nil
}
