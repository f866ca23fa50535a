package mapping

import (
	"log"
	"strings"

	"swout/catalog"
	"swout/model"
)

// Registry は機種ごとのゲームソフトキーワード表を保持します。
// 表が提供されなかった機種は空のテーブルとして扱われ、呼び出し側が
// 「機種が存在しない」ケースを意識する必要はありません。
type Registry struct {
	tables map[catalog.Family][]model.MappingEntry
}

// NewRegistry は空のレジストリを作ります。
func NewRegistry() *Registry {
	return &Registry{tables: make(map[catalog.Family][]model.MappingEntry)}
}

// ClassifySourceName はキーワード表のファイル名（拡張子なし）から機種を推定します。
// 判定は宣言順で、最初に一致した機種が勝ちます。
//   - "switch2"（大文字小文字を無視）または "2" を含む → Switch2
//   - "強化" または "kyouka"（大文字小文字を無視）を含む → Switch強化版
//   - "有機" または小文字の "el" を含む → Switch有機EL
func ClassifySourceName(name string) (catalog.Family, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "switch2") || strings.Contains(name, "2"):
		return catalog.FamilySwitch2, true
	case strings.Contains(name, "強化") || strings.Contains(lower, "kyouka"):
		return catalog.FamilyKyouka, true
	case strings.Contains(name, "有機") || strings.Contains(name, "el"):
		return catalog.FamilyOrganic, true
	}
	return "", false
}

// Load はキーワード表を機種別に振り分けます。
// 機種を推定できない表は WARN を出してスキップし、スキップした名前を返します。
// 同じ機種に複数の表が来た場合は後勝ちです。
func (r *Registry) Load(sources []model.MappingSource) (skipped []string) {
	for _, src := range sources {
		family, ok := ClassifySourceName(src.Name)
		if !ok {
			log.Printf("WARN: ファイル名から機種を推定できません: %s (Switch2 / 強化 / 有機EL のいずれかを含めてください。スキップ)", src.Name)
			skipped = append(skipped, src.Name)
			continue
		}
		r.tables[family] = src.Rows
	}
	return skipped
}

// Get は機種のキーワード表を返します。未提供の機種は空のテーブルです。
func (r *Registry) Get(family catalog.Family) []model.MappingEntry {
	return r.tables[family]
}

// Lookup は商品情報２の文字列に対応するエントリを探します。
// まず（両端の空白を除いた）完全一致、なければキーワードが文字列に
// 含まれる最初のエントリを返します（例: keyword="[1]" と info2="セット[1]"）。
func (r *Registry) Lookup(family catalog.Family, text string) (model.MappingEntry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.MappingEntry{}, false
	}
	entries := r.tables[family]
	for _, e := range entries {
		if strings.TrimSpace(e.Keyword) == text {
			return e, true
		}
	}
	for _, e := range entries {
		if e.Keyword != "" && strings.Contains(text, e.Keyword) {
			return e, true
		}
	}
	return model.MappingEntry{}, false
}
