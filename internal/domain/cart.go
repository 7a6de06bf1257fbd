package domain

// LineItem pairs a variant with a quantity. It carries denormalized product
// and variant snapshots so the cart can render without refetching the
// catalog. At most one line exists per variant id; quantity is always >= 1.
type LineItem struct {
	VariantID string  `json:"variantId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
	Variant   Variant `json:"variant"`
}

// Cart is an ordered collection of line items. Insertion order is display
// order. Cart holds no remote state; see cart.Manager for synchronization.
type Cart struct {
	Lines []LineItem `json:"lines"`
}

// FindLine returns the index of the line for the given variant id, or -1.
func (c *Cart) FindLine(variantID string) int {
	for i := range c.Lines {
		if c.Lines[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// Count is the sum of all line quantities.
func (c *Cart) Count() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total sums unit price times quantity across all lines. Lines must share a
// single currency; mixed currencies yield ErrCurrencyMismatch.
func (c *Cart) Total() (Money, error) {
	total := Money{}
	for _, l := range c.Lines {
		sum, err := total.Add(l.Variant.Price.Mul(l.Quantity))
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}

// Currency returns the currency code of the cart's lines, or "" when empty.
func (c *Cart) Currency() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0].Variant.Price.Currency
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
