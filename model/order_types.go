package model

// Order は取り込んだ注文表の1行（セット注文1件）を表します。
// Qty / Amount は取込時に数値化済みで、変換に失敗した値は
// それぞれ 1 / 0 に落ちています。
type Order struct {
	OrderID string  `json:"orderId"`
	Title   string  `json:"title"`
	Info1   string  `json:"info1"`
	Info2   string  `json:"info2"`
	Qty     int     `json:"qty"`
	Amount  float64 `json:"amount"`
}
