package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type column struct {
	title string
	width float64
}

// sheet is one worksheet of header plus data rows.
type sheet struct {
	name    string
	title   string
	columns []column
	rows    [][]any
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// render writes sheets into a single workbook. The first sheet is active.
func render(sheets ...sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	for i, s := range sheets {
		idx, err := f.NewSheet(s.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, s, headerStyle, titleStyle); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle, titleStyle int) error {
	row := 1
	if s.title != "" {
		if err := f.SetCellValue(s.name, cell(1, row), s.title); err != nil {
			return err
		}
		if err := f.MergeCell(s.name, cell(1, row), cell(len(s.columns), row)); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, cell(1, row), cell(1, row), titleStyle); err != nil {
			return err
		}
		row++
	}

	for i, c := range s.columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if c.width > 0 {
			if err := f.SetColWidth(s.name, colName, colName, c.width); err != nil {
				return err
			}
		}
		if err := f.SetCellValue(s.name, cell(i+1, row), c.title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(s.name, cell(1, row), cell(len(s.columns), row), headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: cell(1, row+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	row++

	for _, values := range s.rows {
		if err := f.SetSheetRow(s.name, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}
	return nil
}
