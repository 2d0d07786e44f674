package model

// WidgetProductItem is the compact shape served to the Lock Screen widget:
// the top open shopping items, nothing more.
type WidgetProductItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	ListName string  `json:"list_name"`
}
