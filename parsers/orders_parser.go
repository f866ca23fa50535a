package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"swout/model"
)

// orderColumnAlias はプラットフォームごとに表記の揺れる注文表の
// 列名を論理名に寄せる対応表です。照合はそのまま → 小文字化の2段階。
var orderColumnAlias = map[string]string{
	"注文番号":     "order_id",
	"注文ＩＤ":     "order_id",
	"order id": "order_id",
	"order_id": "order_id",
	"商品名":      "title",
	"商品名称":     "title",
	"title":    "title",
	"商品情報１":    "info1",
	"商品情報1":    "info1",
	"商品情報 1":   "info1",
	"info1":    "info1",
	"商品情報２":    "info2",
	"商品情報2":    "info2",
	"商品情報 2":   "info2",
	"info2":    "info2",
	"数量":       "qty",
	"個数":       "qty",
	"qty":      "qty",
	"金額":       "amount",
	"合計":       "amount",
	"amount":   "amount",
}

// normalizeOrderColumns はヘッダー行を論理列名に正規化します。
// 別名表で拾えない「商品情報」系の列は 1/２ の有無で info1/info2 に寄せます。
func normalizeOrderColumns(header []string) []string {
	cols := make([]string, len(header))
	for i, c := range header {
		c = strings.TrimSpace(c)
		if mapped, ok := orderColumnAlias[c]; ok {
			cols[i] = mapped
			continue
		}
		if mapped, ok := orderColumnAlias[strings.ToLower(c)]; ok {
			cols[i] = mapped
			continue
		}
		if strings.Contains(c, "商品情報") {
			if strings.ContainsAny(c, "1１") {
				cols[i] = "info1"
				continue
			}
			if strings.ContainsAny(c, "2２") {
				cols[i] = "info2"
				continue
			}
		}
		cols[i] = c
	}
	return cols
}

// ParseOrdersCSV は注文CSVを解析します。
// UTF-8 で読めないファイルは Shift-JIS として読み直します。
func ParseOrdersCSV(r io.Reader) ([]model.Order, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("注文CSVの読み取りに失敗: %w", err)
	}
	decoded, err := DecodeAuto(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	line := 0
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: 注文CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}
		rows = append(rows, rec)
	}
	return ordersFromRows(rows)
}

// ParseOrdersXLSX は注文のExcelファイル（先頭シート）を解析します。
func ParseOrdersXLSX(r io.Reader) ([]model.Order, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excelファイルのオープンに失敗: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("シート %s の読み取りに失敗: %w", sheet, err)
	}
	return ordersFromRows(rows)
}

func ordersFromRows(rows [][]string) ([]model.Order, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("注文表が空です")
	}

	header := normalizeOrderColumns(rows[0])
	colIndex, err := getColIndex(header, []string{"order_id", "title"})
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	for _, rec := range rows[1:] {
		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		empty := true
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		orders = append(orders, model.Order{
			OrderID: get("order_id"),
			Title:   get("title"),
			Info1:   get("info1"),
			Info2:   get("info2"),
			Qty:     parseQty(get("qty")),
			Amount:  parseAmount(get("amount")),
		})
	}
	return orders, nil
}

// parseQty は数量を数値化します。欠損・変換失敗は 1 です。
func parseQty(s string) int {
	if s == "" {
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return int(f)
}

// parseAmount は金額を数値化します。欠損・変換失敗は 0 です。
func parseAmount(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
