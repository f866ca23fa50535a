package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"swout/model"
)

// Columns は出庫表の固定列です。この順序のまま出力します。
var Columns = []string{"存货编码", "仓库", "数量", "单价", "SN码", "备注"}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// WriteCSV は出庫表を UTF-8 BOM 付き・CRLF・全列引用の CSV にします。
func WriteCSV(lines []model.OutputLine) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString(strings.Join(Columns, ",") + "\r\n")

	for _, l := range lines {
		record := []string{
			quoteAll(l.JanCode),
			quoteAll(l.Warehouse),
			quoteAll(strconv.Itoa(l.Qty)),
			quoteAll(formatPrice(l.UnitPrice)),
			quoteAll(l.SerialNo),
			quoteAll(l.Note),
		}
		buf.WriteString(strings.Join(record, ",") + "\r\n")
	}
	return buf.Bytes()
}

// WriteXLSX は出庫表を Excel ブック（先頭シート、ヘッダー行あり、
// インデックス列なし）にします。
func WriteXLSX(lines []model.OutputLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &Columns); err != nil {
		return nil, fmt.Errorf("ヘッダー行の書き込みに失敗: %w", err)
	}

	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{l.JanCode, l.Warehouse, l.Qty, l.UnitPrice, l.SerialNo, l.Note}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("%d行目の書き込みに失敗: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("Excelブックの生成に失敗: %w", err)
	}
	return buf.Bytes(), nil
}
