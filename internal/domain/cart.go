package domain

// CartLine is one product's presence in the cart. AvailableStock is a
// snapshot of the product's stock taken when the line was created; quantity
// clamping uses this snapshot, not live catalog stock.
type CartLine struct {
	ItemID         string  `json:"id"`
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	UnitPrice      float64 `json:"selling_price"`
	ImageURL       string  `json:"image_url,omitempty"`
	Quantity       int     `json:"quantity"`
	AvailableStock int     `json:"stock_quantity"`
}

// Cart is the ordered line collection for one client session. At most one
// line exists per item id.
type Cart struct {
	Lines []CartLine `json:"items"`
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

// FindLine returns the index of the line with the given item id, or -1.
func (c *Cart) FindLine(itemID string) int {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

// CloneLines returns a copy of the line collection, safe to hand out.
func (c *Cart) CloneLines() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}
