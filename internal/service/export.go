package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"devs-society/backend/internal/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// buildSheet renders a single-sheet workbook with a styled header row
func buildSheet(sheetName string, headers []string, widths []float64, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if i < len(widths) {
			f.SetColWidth(sheetName, col, col, widths[i])
		}
		f.SetCellValue(sheetName, col+"1", h)
	}
	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		f.SetCellStyle(sheetName, "A1", last+"1", headerStyle)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxFile(name string, data []byte) *dto.ExportFile {
	return &dto.ExportFile{Filename: name, ContentType: xlsxContentType, Data: data}
}
