package splitter

import (
	"math"

	"swout/catalog"
	"swout/mapping"
	"swout/model"
)

// Splitter は1行のセット注文を出庫表の複数行に分解します。
// 注文ごとの処理は独立で、Registry / Catalog は処理中に変更されません。
type Splitter struct {
	catalog  *catalog.Catalog
	registry *mapping.Registry
}

func New(cat *catalog.Catalog, reg *mapping.Registry) *Splitter {
	return &Splitter{catalog: cat, registry: reg}
}

// SplitOrder は1注文を ゲームソフト行 → 付属品行 → 本体行 の順に分解します。
// 本体行は機種・型番が解決できなくても（JAN空欄のまま）必ず最後に1行出ます。
// 本体単価は残額を数量で割った切り捨てで、負になる場合は 0 に丸めます。
func (s *Splitter) SplitOrder(o model.Order) []model.OutputLine {
	remain := o.Amount

	family, familyOK := s.catalog.Classify(o.Title)

	// 型番・カラーは商品情報１のみで判定し、商品名へはフォールバックしない
	consoleJan := ""
	if familyOK {
		if kw, ok := s.catalog.ResolveModel(family, o.Info1); ok {
			consoleJan = s.catalog.JanCode(family, kw)
		}
	}

	var lines []model.OutputLine

	// ゲームソフト行（機種に対応するキーワード表が当たった場合のみ）
	if familyOK {
		if entry, ok := s.registry.Lookup(family, o.Info2); ok {
			lines = append(lines, model.OutputLine{
				JanCode:   entry.JanCode,
				Qty:       o.Qty,
				UnitPrice: entry.UnitPrice,
				Note:      o.OrderID,
			})
			remain -= entry.UnitPrice * float64(o.Qty)
		}
	}

	// 付属品行（固定付属品を持つ機種のみ）
	if familyOK {
		for _, acc := range s.catalog.Accessories(family) {
			lines = append(lines, model.OutputLine{
				JanCode:   acc.JanCode,
				Qty:       o.Qty,
				UnitPrice: acc.UnitPrice,
				Note:      o.OrderID,
			})
			remain -= acc.UnitPrice * float64(o.Qty)
		}
	}

	// 本体行（常に最後）
	var unitPrice float64
	if o.Qty > 0 {
		unitPrice = math.Max(math.Floor(remain/float64(o.Qty)), 0)
	}
	lines = append(lines, model.OutputLine{
		JanCode:   consoleJan,
		Qty:       o.Qty,
		UnitPrice: unitPrice,
		Note:      o.OrderID,
	})

	return lines
}

// Run は全注文を入力順に処理し、1つの出庫表にまとめます。
func (s *Splitter) Run(orders []model.Order) []model.OutputLine {
	var out []model.OutputLine
	for _, o := range orders {
		out = append(out, s.SplitOrder(o)...)
	}
	return out
}
