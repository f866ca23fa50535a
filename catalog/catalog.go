package catalog

import "strings"

// Family は本体の機種（Switch2 / Switch強化版 / Switch有機EL）を表します。
// 文字列値は商品名の機種判定トークンを兼ねます。
type Family string

const (
	FamilySwitch2 Family = "Switch2"
	FamilyKyouka  Family = "Switch強化版"
	FamilyOrganic Family = "Switch有機EL"
)

// ModelEntry は型番・カラーのキーワードと本体JANコードの対応1件です。
type ModelEntry struct {
	Keyword string
	JanCode string
}

// Accessory は特定機種に必ず同梱される付属品の固定定義です。
type Accessory struct {
	Name      string
	JanCode   string
	UnitPrice float64
}

// FamilyDef は1機種分の静的定義です。
// Models は判定順をそのまま使うためマップではなくスライスで持ちます。
type FamilyDef struct {
	Family      Family
	Models      []ModelEntry
	Accessories []Accessory
}

// Catalog は機種判定・型番解決に使うテーブル一式です。
// 判定は defs の宣言順で行い、最初に一致した機種が勝ちます。
type Catalog struct {
	defs []FamilyDef
}

// New は任意のテーブルから Catalog を作ります（テスト用の差し替えにも使用）。
func New(defs []FamilyDef) *Catalog {
	return &Catalog{defs: defs}
}

// Default は組み込みの機種テーブルを返します。
func Default() *Catalog {
	return New([]FamilyDef{
		{
			Family: FamilySwitch2,
			Models: []ModelEntry{
				{Keyword: "国内専用", JanCode: "4902370553024"},
				{Keyword: "マリオカート", JanCode: "4902370553031"},
				{Keyword: "LEGENDS", JanCode: "4902370553505"},
			},
			Accessories: []Accessory{
				{Name: "フィルム", JanCode: "98462", UnitPrice: 500},
				{Name: "ケース", JanCode: "98463", UnitPrice: 500},
			},
		},
		{
			Family: FamilyKyouka,
			Models: []ModelEntry{
				{Keyword: "ネオン", JanCode: "4902370550733"},
				{Keyword: "グレー", JanCode: "4902370551198"},
			},
		},
		{
			Family: FamilyOrganic,
			Models: []ModelEntry{
				{Keyword: "ホワイト", JanCode: "4902370548495"},
				{Keyword: "ネオン", JanCode: "4902370548501"},
			},
		},
	})
}

// Families は宣言順の機種一覧を返します。
func (c *Catalog) Families() []Family {
	families := make([]Family, 0, len(c.defs))
	for _, def := range c.defs {
		families = append(families, def.Family)
	}
	return families
}

// Classify は商品名から機種を判定します。
// 機種トークンの大文字小文字を無視した部分一致で、宣言順の最初の一致を返します。
func (c *Catalog) Classify(title string) (Family, bool) {
	ttl := strings.ToLower(title)
	for _, def := range c.defs {
		if strings.Contains(ttl, strings.ToLower(string(def.Family))) {
			return def.Family, true
		}
	}
	return "", false
}

// ResolveModel は商品情報１の文字列から型番・カラーのキーワードを判定します。
// 商品名へのフォールバックはしません。
func (c *Catalog) ResolveModel(family Family, text string) (string, bool) {
	def, ok := c.find(family)
	if !ok || text == "" {
		return "", false
	}
	src := strings.ToLower(text)
	for _, m := range def.Models {
		if strings.Contains(src, strings.ToLower(m.Keyword)) {
			return m.Keyword, true
		}
	}
	return "", false
}

// JanCode はキーワードに対応する本体JANコードを返します。未定義なら空です。
func (c *Catalog) JanCode(family Family, keyword string) string {
	def, ok := c.find(family)
	if !ok {
		return ""
	}
	for _, m := range def.Models {
		if m.Keyword == keyword {
			return m.JanCode
		}
	}
	return ""
}

// Accessories は機種の固定付属品を返します。付属品のない機種は空です。
func (c *Catalog) Accessories(family Family) []Accessory {
	def, ok := c.find(family)
	if !ok {
		return nil
	}
	return def.Accessories
}

func (c *Catalog) find(family Family) (FamilyDef, bool) {
	for _, def := range c.defs {
		if def.Family == family {
			return def, true
		}
	}
	return FamilyDef{}, false
}
