package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Pooyash1998/studyplanner/internal/model"
	"github.com/Pooyash1998/studyplanner/internal/planner"
)

// ────────────────────── Markdown ──────────────────────

func renderMarkdown(b *planner.Board) *bytes.Buffer {
	var sb strings.Builder
	sb.WriteString("# Study Plan\n\n")
	for _, s := range b.Semesters {
		fmt.Fprintf(&sb, "## %s (%s)\n\n", s.Name, s.Type)
		for _, m := range b.SemesterModules(s) {
			fmt.Fprintf(&sb, "- %s (%d CP, Hardness: %d)\n", m.Name, m.Credits, m.Hardness)
		}
		sb.WriteString("\n")
	}
	return bytes.NewBufferString(sb.String())
}

// ────────────────────── PNG ──────────────────────

const (
	pngMargin    = 20.0
	pngColWidth  = 240.0
	pngColGap    = 16.0
	pngTitleH    = 40.0
	pngHeaderH   = 48.0
	pngCardH     = 44.0
	pngCardGap   = 8.0
	pngCardInset = 10.0
	pngMinRows   = 3
)

type boardColumn struct {
	title    string
	subtitle string
	modules  []model.Module
}

func boardColumns(b *planner.Board) []boardColumn {
	cols := []boardColumn{{
		title:    "Unassigned",
		subtitle: fmt.Sprintf("%d modules", len(b.Unassigned())),
		modules:  b.Unassigned(),
	}}
	for _, s := range b.Semesters {
		cols = append(cols, boardColumn{
			title:    fmt.Sprintf("%s (%s)", s.Name, s.Type),
			subtitle: fmt.Sprintf("Hardness %d/%d  |  %d CP", b.HardnessSum(s), s.HardnessLimit, b.CreditSum(s)),
			modules:  b.SemesterModules(s),
		})
	}
	return cols
}

func hardnessColor(h int) string {
	switch h {
	case 1:
		return "#dcfce7"
	case 2:
		return "#fef3c7"
	default:
		return "#fee2e2"
	}
}

// fitText 超出宽度时截断并追加省略号
func fitText(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		candidate := string(r) + "..."
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return ""
}

func renderPNG(b *planner.Board) (*bytes.Buffer, error) {
	cols := boardColumns(b)
	rows := pngMinRows
	for _, c := range cols {
		if len(c.modules) > rows {
			rows = len(c.modules)
		}
	}

	width := 2*pngMargin + float64(len(cols))*pngColWidth + float64(len(cols)-1)*pngColGap
	colH := pngHeaderH + float64(rows)*(pngCardH+pngCardGap) + pngCardGap
	height := 2*pngMargin + pngTitleH + colH

	dc := gg.NewContext(int(width), int(height))
	dc.SetHexColor("#f8fafc")
	dc.Clear()

	dc.SetHexColor("#0f172a")
	dc.DrawStringAnchored("Study Plan", pngMargin, pngMargin+pngTitleH/2, 0, 0.5)

	top := pngMargin + pngTitleH
	for i, c := range cols {
		x := pngMargin + float64(i)*(pngColWidth+pngColGap)

		dc.SetHexColor("#ffffff")
		dc.DrawRoundedRectangle(x, top, pngColWidth, colH, 8)
		dc.Fill()
		dc.SetHexColor("#cbd5e1")
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(x, top, pngColWidth, colH, 8)
		dc.Stroke()

		dc.SetHexColor("#0f172a")
		dc.DrawStringAnchored(fitText(dc, c.title, pngColWidth-2*pngCardInset), x+pngCardInset, top+16, 0, 0.5)
		dc.SetHexColor("#64748b")
		dc.DrawStringAnchored(fitText(dc, c.subtitle, pngColWidth-2*pngCardInset), x+pngCardInset, top+34, 0, 0.5)

		for j, m := range c.modules {
			cx := x + pngCardInset
			cy := top + pngHeaderH + float64(j)*(pngCardH+pngCardGap)
			cw := pngColWidth - 2*pngCardInset

			dc.SetHexColor(hardnessColor(m.Hardness))
			dc.DrawRoundedRectangle(cx, cy, cw, pngCardH, 6)
			dc.Fill()

			name := m.Name
			if m.Frozen {
				name = "[frozen] " + name
			}
			dc.SetHexColor("#0f172a")
			dc.DrawStringAnchored(fitText(dc, name, cw-16), cx+8, cy+14, 0, 0.5)
			dc.SetHexColor("#475569")
			dc.DrawStringAnchored(fmt.Sprintf("%d CP  |  Hardness %d", m.Credits, m.Hardness), cx+8, cy+32, 0, 0.5)
		}
	}

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf, nil
}

// ────────────────────── PDF ──────────────────────

// renderPDF 看板图铺满 A4 横向页（297×210 mm）
func renderPDF(b *planner.Board) (*bytes.Buffer, error) {
	img, err := renderPNG(b)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("board", opt, bytes.NewReader(img.Bytes()))
	pdf.ImageOptions("board", 0, 0, 297, 210, false, opt, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	return buf, nil
}

// ────────────────────── XLSX ──────────────────────

func renderXLSX(b *planner.Board) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Study Plan"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []interface{}{"Semester", "Type", "Module", "Credits", "Hardness", "Frozen"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	row := 2
	write := func(semester, typ string, m model.Module) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{semester, typ, m.Name, m.Credits, m.Hardness, m.Frozen}
		row++
		return f.SetSheetRow(sheet, cell, &values)
	}

	for _, s := range b.Semesters {
		for _, m := range b.SemesterModules(s) {
			if err := write(s.Name, string(s.Type), m); err != nil {
				return nil, err
			}
		}
	}
	for _, m := range b.Unassigned() {
		if err := write("Unassigned", "", m); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
