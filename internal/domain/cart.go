package domain

// CartItem is a single entry in a shopping cart. Price is a snapshot taken
// when the item was first added; later catalog changes do not affect it.
type CartItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Cart is the cart aggregate. Items keep first-added order; TotalItems and
// TotalPrice are always recomputed from Items, never stored independently.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// EmptyCart returns the canonical empty cart state.
func EmptyCart() Cart {
	return Cart{
		Items:      []CartItem{},
		TotalItems: 0,
		TotalPrice: 0,
	}
}

// AddItem returns a new cart with quantity units of item added. If an entry
// with the same ID already exists its quantity is incremented in place,
// preserving item order; otherwise the item is appended. A non-positive
// quantity is normalized to 1 rather than rejected.
func (c Cart) AddItem(item CartItem, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}

	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		item.Quantity = quantity
		items = append(items, item)
	}

	return newCart(items)
}

// RemoveItem returns a new cart without the entry matching id. Removing an
// absent id is a no-op, not an error.
func (c Cart) RemoveItem(id int) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return newCart(items)
}

// UpdateQuantity returns a new cart with the entry matching id set to the
// given absolute quantity. A quantity of zero or less behaves exactly as
// RemoveItem: an item with non-positive quantity must not exist in the cart.
func (c Cart) UpdateQuantity(id, quantity int) Cart {
	if quantity <= 0 {
		return c.RemoveItem(id)
	}

	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
		}
	}
	return newCart(items)
}

// ItemQuantity returns the quantity of the entry matching id, or 0 if absent.
func (c Cart) ItemQuantity(id int) int {
	for _, item := range c.Items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

// HasItem reports whether the cart contains an entry matching id.
func (c Cart) HasItem(id int) bool {
	return c.ItemQuantity(id) > 0
}

// newCart builds a cart from items, recomputing both totals.
func newCart(items []CartItem) Cart {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}
	return Cart{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}
}
