package cart

import (
	"bytes"
	"encoding/json"
)

// ItemID identifies a cart line. Older carts written by the storefront script
// stored numeric ids, so both JSON numbers and strings decode.
type ItemID string

func (id ItemID) String() string { return string(id) }

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ItemID(n.String())
	return nil
}

// Item is one cart line. Items sharing the same (Name, Price) are merged into
// a single entry whose Qty counts the additions.
type Item struct {
	ID    ItemID  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Style string  `json:"style"`
	Src   string  `json:"src"`
	Qty   int     `json:"qty"`
}

// Matches reports whether the item has the merge key of in. Both name and
// price compare exactly.
func (i Item) Matches(in ProductInput) bool {
	return i.Name == in.Name && i.Price == in.Price
}

// ProductInput is the data needed to add a product to the cart.
type ProductInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Style string  `json:"style"`
	Src   string  `json:"src"`
}

// TotalQty sums quantities across items.
func TotalQty(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}

// Summary is the cart view handed to the checkout page.
type Summary struct {
	Items          []Item  `json:"items"`
	Count          int     `json:"count"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
}

// DecodeItems parses a persisted cart list. Quantities below one are read as
// one. A blank payload is an empty cart.
func DecodeItems(raw []byte) ([]Item, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Item{}, err
	}
	if items == nil {
		return []Item{}, nil
	}
	for i := range items {
		if items[i].Qty < 1 {
			items[i].Qty = 1
		}
	}
	return items, nil
}

// EncodeItems serializes the full cart list.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

