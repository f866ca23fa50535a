package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// DecodeAuto はまず UTF-8 として解釈し、妥当でなければ
// Shift-JIS (cp932) としてデコードします。
func DecodeAuto(b []byte) ([]byte, error) {
	if utf8.Valid(b) {
		return b, nil
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return nil, fmt.Errorf("Shift-JISデコードに失敗: %w", err)
	}
	return decoded, nil
}

// getColIndex はヘッダー名から列インデックスを取得するヘルパーです。
// 同名の列が複数ある場合は最初の列を採用します。
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		name := strings.TrimSpace(colName)
		if _, ok := colIndex[name]; !ok {
			colIndex[name] = i
		}
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("必須ヘッダーが見つかりません: %s", req)
		}
	}
	return colIndex, nil
}
