package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"

	"github.com/avasant/docuchat/internal/domain"
)

// Spreadsheets are rendered as aligned text tables, one per sheet, so that
// row context survives chunking better than raw comma runs.

func extractCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &domain.ExtractionError{Format: ".csv", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &domain.ExtractionError{Format: ".csv", Err: err}
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return "", &domain.ExtractionError{Format: ".csv", Err: errors.New("empty file")}
	}
	return renderTable(rows), nil
}

func extractXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Error("failed opening xlsx", "error", err)
		return "", &domain.ExtractionError{Format: ".xlsx", Err: err}
	}
	defer f.Close()

	var sheets []string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			logger.Error("failed reading sheet", "sheet", name, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, fmt.Sprintf("Sheet: %s\n%s", name, renderTable(rows)))
	}
	if len(sheets) == 0 {
		return "", &domain.ExtractionError{Format: ".xlsx", Err: errors.New("no extractable rows")}
	}
	return strings.Join(sheets, "\n\n"), nil
}

func extractXLS(path string) (string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		logger.Error("failed opening xls", "error", err)
		return "", &domain.ExtractionError{Format: ".xls", Err: err}
	}

	var sheets []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			var cells []string
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, fmt.Sprintf("Sheet: %s\n%s", sheet.Name, renderTable(rows)))
	}
	if len(sheets) == 0 {
		return "", &domain.ExtractionError{Format: ".xls", Err: errors.New("no extractable rows")}
	}
	return strings.Join(sheets, "\n\n"), nil
}

func renderTable(rows [][]string) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader(rows[0])
	for _, row := range rows[1:] {
		table.Append(row)
	}
	table.Render()
	return b.String()
}
