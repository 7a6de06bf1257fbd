package domain

type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"src"`
	AltText string `json:"altText,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is one purchasable configuration of a product, identified by an
// opaque platform id.
type Variant struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Price     Money            `json:"price"`
	Available bool             `json:"availableForSale"`
	Options   []SelectedOption `json:"selectedOptions,omitempty"`
	Image     *Image           `json:"image,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	ProductType string    `json:"productType,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Images      []Image   `json:"images,omitempty"`
	Variants    []Variant `json:"variants"`
	Available   bool      `json:"availableForSale"`
}

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

type PriceRange struct {
	Min Money `json:"minVariantPrice"`
	Max Money `json:"maxVariantPrice"`
}

// PriceRange derives the cheapest and most expensive variant prices.
func (p *Product) PriceRange() PriceRange {
	if len(p.Variants) == 0 {
		return PriceRange{}
	}
	min := p.Variants[0].Price
	max := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.Currency != min.Currency {
			continue
		}
		if v.Price.Amount.LessThan(min.Amount) {
			min = v.Price
		}
		if v.Price.Amount.GreaterThan(max.Amount) {
			max = v.Price
		}
	}
	return PriceRange{Min: min, Max: max}
}

type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       *Image    `json:"image,omitempty"`
	Products    []Product `json:"products,omitempty"`
}
