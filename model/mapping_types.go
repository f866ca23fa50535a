package model

// MappingEntry はゲームソフト（同梱ディスク）キーワード表の1行です。
// 単価が数値化できなかった行は 0 になります。
type MappingEntry struct {
	Keyword   string  `json:"keyword"`
	JanCode   string  `json:"jan"`
	UnitPrice float64 `json:"unitPrice"`
}

// MappingSource は機種判定前のキーワード表1ファイル分です。
// Name は拡張子を除いたファイル名で、機種の推定に使われます。
type MappingSource struct {
	Name string
	Rows []MappingEntry
}
