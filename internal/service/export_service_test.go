package service

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
)

// ── 测试辅助 ──

func setupTestExportService(t *testing.T) ExportService {
	t.Helper()
	env, modSvc, semSvc := setupModuleEnv(t)
	ctx := context.Background()

	calc := createModule(t, modSvc, "Calculus", 3, "Winter")
	prog := createModule(t, modSvc, "Programming", 1, "Winter", "Summer")
	createModule(t, modSvc, "Statistics", 2, "Summer")

	for _, req := range []dto.MoveRequest{
		{ModuleID: calc.ID, From: "unassigned", To: "1"},
		{ModuleID: prog.ID, From: "unassigned", To: "2"},
	} {
		req := req
		if _, err := semSvc.Move(ctx, &req); err != nil {
			t.Fatalf("拖放失败: %v", err)
		}
	}
	return NewExportService(env.ws, zap.NewNop())
}

// ── Export 测试 ──

func TestExportService_Markdown(t *testing.T) {
	svc := setupTestExportService(t)

	file, err := svc.Export(context.Background(), ExportMarkdown)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	want := "# Study Plan\n\n" +
		"## Semester 1 (Winter)\n\n- Calculus (5 CP, Hardness: 3)\n\n" +
		"## Semester 2 (Summer)\n\n- Programming (5 CP, Hardness: 1)\n\n" +
		"## Semester 3 (Winter)\n\n\n" +
		"## Semester 4 (Summer)\n\n\n"
	if got := file.Content.String(); got != want {
		t.Errorf("Markdown 内容不符:\n%s\n期望:\n%s", got, want)
	}
	if file.Filename != "study-plan.md" || !strings.HasPrefix(file.ContentType, "text/markdown") {
		t.Errorf("文件信息不符: %s %s", file.Filename, file.ContentType)
	}
}

func TestExportService_PNG(t *testing.T) {
	svc := setupTestExportService(t)

	file, err := svc.Export(context.Background(), ExportPNG)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(file.Content.Bytes()))
	if err != nil {
		t.Fatalf("PNG 无法解码: %v", err)
	}
	// 未分配列 + 4 个学期列
	if w := img.Bounds().Dx(); w < 5*int(pngColWidth) {
		t.Errorf("图片宽度过小: %d", w)
	}
}

func TestExportService_PDF(t *testing.T) {
	svc := setupTestExportService(t)

	file, err := svc.Export(context.Background(), ExportPDF)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !bytes.HasPrefix(file.Content.Bytes(), []byte("%PDF")) {
		t.Errorf("输出不是 PDF")
	}
	if file.ContentType != "application/pdf" {
		t.Errorf("ContentType 不符: %s", file.ContentType)
	}
}

func TestExportService_XLSX(t *testing.T) {
	svc := setupTestExportService(t)

	file, err := svc.Export(context.Background(), ExportXLSX)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(file.Content.Bytes()))
	if err != nil {
		t.Fatalf("xlsx 无法打开: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Study Plan")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望 4 行（表头 + 3 个模块），实际 %d", len(rows))
	}
	if rows[0][0] != "Semester" || rows[0][2] != "Module" {
		t.Errorf("表头不符: %v", rows[0])
	}
	if rows[1][0] != "Semester 1" || rows[1][2] != "Calculus" || rows[1][3] != "5" {
		t.Errorf("第一行不符: %v", rows[1])
	}
	if rows[3][0] != "Unassigned" || rows[3][2] != "Statistics" {
		t.Errorf("未分配模块应在最后: %v", rows[3])
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	svc := setupTestExportService(t)

	if _, err := svc.Export(context.Background(), "docx"); !errors.Is(err, ErrExportFormat) {
		t.Errorf("期望 ErrExportFormat，实际 %v", err)
	}
}
