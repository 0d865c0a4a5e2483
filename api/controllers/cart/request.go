package cart

import "github.com/angelmondragon/roxi-storefront/internal/cart"

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	Name  string   `json:"name" validate:"required,max=200"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Style string   `json:"style" validate:"max=100"`
	Src   string   `json:"src" validate:"max=2048"`
}

func (r AddItemRequest) toInput() cart.ProductInput {
	in := cart.ProductInput{Name: r.Name, Style: r.Style, Src: r.Src}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}
