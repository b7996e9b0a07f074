package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedType rejects uploads that are not .csv, .xls or .xlsx.
var ErrUnsupportedType = errors.New("unsupported file type")

// Sheet is one tab of an uploaded workbook as raw string cells. CSV files
// are represented as a single sheet named after the file.
type Sheet struct {
	Name string
	Rows [][]string
}

// ParseWorkbook reads an uploaded export into its sheets. Supported formats
// are .xlsx, legacy .xls and .csv; anything else is rejected up front.
func ParseWorkbook(file io.Reader, filename string) ([]Sheet, error) {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i:])
	}
	switch ext {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, err
		}
		return []Sheet{{Name: filename, Rows: rows}}, nil
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheets := make([]Sheet, 0, f.SheetCount)
		for _, name := range f.GetSheetList() {
			rows, err := f.GetRows(name)
			if err != nil {
				return nil, err
			}
			sheets = append(sheets, Sheet{Name: name, Rows: rows})
		}
		return sheets, nil
	case ".xls":
		buf, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		wb, err := xls.OpenReader(bytes.NewReader(buf), "utf-8")
		if err != nil {
			return nil, err
		}
		sheets := make([]Sheet, 0, wb.NumSheets())
		for i := 0; i < wb.NumSheets(); i++ {
			ws := wb.GetSheet(i)
			if ws == nil {
				continue
			}
			rows := make([][]string, 0, int(ws.MaxRow)+1)
			for r := 0; r <= int(ws.MaxRow); r++ {
				row := ws.Row(r)
				if row == nil {
					rows = append(rows, []string{})
					continue
				}
				cells := make([]string, row.LastCol())
				for c := row.FirstCol(); c < row.LastCol(); c++ {
					cells[c] = row.Col(c)
				}
				rows = append(rows, cells)
			}
			sheets = append(sheets, Sheet{Name: ws.Name, Rows: rows})
		}
		return sheets, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
}
