package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swout/catalog"
	"swout/mapping"
	"swout/model"
)

func defaultSplitter(sources ...model.MappingSource) *Splitter {
	reg := mapping.NewRegistry()
	reg.Load(sources)
	return New(catalog.Default(), reg)
}

func TestSplitOrderWithDisc(t *testing.T) {
	// 強化版: ソフト行 → 本体行 の2行。本体単価は残額の切り捨て。
	spl := defaultSplitter(model.MappingSource{
		Name: "強化版ソフト",
		Rows: []model.MappingEntry{
			{Keyword: "[1]", JanCode: "C1", UnitPrice: 3000},
		},
	})

	lines := spl.SplitOrder(model.Order{
		OrderID: "A1",
		Title:   "Nintendo Switch強化版 福袋",
		Info1:   "ネオン",
		Info2:   "[1]",
		Qty:     2,
		Amount:  10000,
	})

	require.Len(t, lines, 2)

	assert.Equal(t, "C1", lines[0].JanCode)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, float64(3000), lines[0].UnitPrice)
	assert.Equal(t, "A1", lines[0].Note)

	// 残額 10000 - 3000×2 = 4000 → floor(4000/2) = 2000
	assert.Equal(t, "4902370550733", lines[1].JanCode)
	assert.Equal(t, 2, lines[1].Qty)
	assert.Equal(t, float64(2000), lines[1].UnitPrice)
	assert.Equal(t, "A1", lines[1].Note)
}

func TestSplitOrderSwitch2Accessories(t *testing.T) {
	// Switch2 はソフト行の後に固定付属品（フィルム・ケース）が付く
	spl := defaultSplitter(model.MappingSource{
		Name: "Switch2ソフト",
		Rows: []model.MappingEntry{
			{Keyword: "[1]", JanCode: "S1", UnitPrice: 8000},
		},
	})

	lines := spl.SplitOrder(model.Order{
		OrderID: "B1",
		Title:   "Switch2 マリオカート セット",
		Info1:   "マリオカート",
		Info2:   "[1]",
		Qty:     1,
		Amount:  65000,
	})

	require.Len(t, lines, 4)

	// 行順の契約: ソフト → 付属品 → 本体（常に最後）
	assert.Equal(t, "S1", lines[0].JanCode)
	assert.Equal(t, "98462", lines[1].JanCode)
	assert.Equal(t, float64(500), lines[1].UnitPrice)
	assert.Equal(t, "98463", lines[2].JanCode)
	assert.Equal(t, float64(500), lines[2].UnitPrice)

	// 残額 65000 - 8000 - 500 - 500 = 56000
	assert.Equal(t, "4902370553031", lines[3].JanCode)
	assert.Equal(t, float64(56000), lines[3].UnitPrice)

	for _, l := range lines {
		assert.Equal(t, 1, l.Qty)
		assert.Equal(t, "B1", l.Note)
	}
}

func TestSplitOrderUnmatchedTitle(t *testing.T) {
	// 機種が判定できない注文は本体行1行のみ（JAN空欄・満額）
	spl := defaultSplitter()

	lines := spl.SplitOrder(model.Order{
		OrderID: "C1",
		Title:   "何か別の商品",
		Qty:     2,
		Amount:  9999,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "", lines[0].JanCode)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, float64(4999), lines[0].UnitPrice) // floor(9999/2)
	assert.Equal(t, "C1", lines[0].Note)
}

func TestSplitOrderNoDiscMatch(t *testing.T) {
	// キーワードが当たらなければソフト行なし・残額は満額本体へ
	spl := defaultSplitter(model.MappingSource{
		Name: "有機ELソフト",
		Rows: []model.MappingEntry{
			{Keyword: "[1]", JanCode: "D1", UnitPrice: 5000},
		},
	})

	lines := spl.SplitOrder(model.Order{
		OrderID: "D9",
		Title:   "Switch有機EL 本体",
		Info1:   "ホワイト",
		Info2:   "[99]",
		Qty:     1,
		Amount:  37980,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "4902370548495", lines[0].JanCode)
	assert.Equal(t, float64(37980), lines[0].UnitPrice)
}

func TestSplitOrderNegativeRemainderClamp(t *testing.T) {
	// ソフト+付属品が金額を超えても本体単価は 0 止まり（負にならない）
	spl := defaultSplitter(model.MappingSource{
		Name: "Switch2ソフト",
		Rows: []model.MappingEntry{
			{Keyword: "[1]", JanCode: "S1", UnitPrice: 8000},
		},
	})

	lines := spl.SplitOrder(model.Order{
		OrderID: "E1",
		Title:   "Switch2 セット",
		Info1:   "国内専用",
		Info2:   "[1]",
		Qty:     1,
		Amount:  5000,
	})

	require.Len(t, lines, 4)
	assert.Equal(t, float64(0), lines[3].UnitPrice)
}

func TestSplitOrderZeroQty(t *testing.T) {
	spl := defaultSplitter()

	lines := spl.SplitOrder(model.Order{
		OrderID: "F1",
		Title:   "Switch有機EL 本体",
		Info1:   "ネオン",
		Qty:     0,
		Amount:  30000,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Qty)
	assert.Equal(t, float64(0), lines[0].UnitPrice)
}

func TestRunKeepsInputOrder(t *testing.T) {
	spl := defaultSplitter()

	lines := spl.Run([]model.Order{
		{OrderID: "O1", Title: "Switch強化版", Info1: "グレー", Qty: 1, Amount: 30000},
		{OrderID: "O2", Title: "未知の商品", Qty: 1, Amount: 1000},
		{OrderID: "O3", Title: "Switch2", Info1: "国内専用", Qty: 1, Amount: 50000},
	})

	var notes []string
	for _, l := range lines {
		notes = append(notes, l.Note)
	}
	assert.Equal(t, []string{"O1", "O2", "O3", "O3", "O3"}, notes)

	// 本体行は各注文の最後
	assert.Equal(t, "4902370551198", lines[0].JanCode)
	assert.Equal(t, "", lines[1].JanCode)
	assert.Equal(t, "4902370553024", lines[4].JanCode)
}
