package model

// OutputLine は出庫表の1行です。
// 列順（存货编码/仓库/数量/单价/SN码/备注）は export 側で固定しています。
// Warehouse と SerialNo は現状常に空欄です。
type OutputLine struct {
	JanCode   string  `json:"janCode"`
	Warehouse string  `json:"warehouse"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	SerialNo  string  `json:"serialNo"`
	Note      string  `json:"note"`
}
