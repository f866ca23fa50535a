package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"swout/model"
)

// mappingColumnAlias はキーワード表の列名の揺れを論理名に寄せる対応表です。
var mappingColumnAlias = map[string]string{
	"キーワード":      "keyword",
	"keyword":    "keyword",
	"janコード":     "jan",
	"jan":        "jan",
	"単価":         "unit_price",
	"unit_price": "unit_price",
}

func normalizeMappingColumns(header []string) []string {
	cols := make([]string, len(header))
	for i, c := range header {
		c = strings.TrimSpace(c)
		if mapped, ok := mappingColumnAlias[c]; ok {
			cols[i] = mapped
			continue
		}
		if mapped, ok := mappingColumnAlias[strings.ToLower(c)]; ok {
			cols[i] = mapped
			continue
		}
		cols[i] = c
	}
	return cols
}

// ParseMappingCSV はゲームソフトのキーワード表CSVを解析します。
// UTF-8 で読めないファイルは Shift-JIS として読み直します。
// 単価が数値化できない行は 0 で取り込みます（エラーにはしません）。
func ParseMappingCSV(r io.Reader) ([]model.MappingEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("キーワード表CSVの読み取りに失敗: %w", err)
	}
	decoded, err := DecodeAuto(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSVファイルが空です")
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex, err := getColIndex(normalizeMappingColumns(header), []string{"keyword", "jan"})
	if err != nil {
		return nil, err
	}
	idxPrice, hasPrice := colIndex["unit_price"]

	var entries []model.MappingEntry
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: キーワード表CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return rec[idx]
			}
			return ""
		}

		keyword := get(colIndex["keyword"])
		if strings.TrimSpace(keyword) == "" {
			continue
		}

		entry := model.MappingEntry{
			Keyword: keyword,
			JanCode: strings.TrimSpace(get(colIndex["jan"])),
		}
		if hasPrice {
			entry.UnitPrice, _ = strconv.ParseFloat(strings.TrimSpace(get(idxPrice)), 64)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
