package gateway

import (
	"storefront/internal/domain"
)

// Wire shapes of the platform's storefront API.

type wireMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type wireImage struct {
	ID      string `json:"id,omitempty"`
	Src     string `json:"src"`
	AltText string `json:"altText,omitempty"`
}

type wireOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireVariant struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	PriceV2          wireMoney    `json:"priceV2"`
	AvailableForSale bool         `json:"availableForSale"`
	SelectedOptions  []wireOption `json:"selectedOptions"`
	Image            *wireImage   `json:"image,omitempty"`
}

type wireProduct struct {
	ID               string        `json:"id"`
	Handle           string        `json:"handle"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Vendor           string        `json:"vendor"`
	ProductType      string        `json:"productType"`
	Tags             []string      `json:"tags"`
	Images           []wireImage   `json:"images"`
	Variants         []wireVariant `json:"variants"`
	AvailableForSale bool          `json:"availableForSale"`
}

type wireCollection struct {
	ID          string        `json:"id"`
	Handle      string        `json:"handle"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       *wireImage    `json:"image,omitempty"`
	Products    []wireProduct `json:"products"`
}

type wireCheckoutLine struct {
	ID        string `json:"id"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type wireCheckout struct {
	ID        string             `json:"id"`
	WebURL    string             `json:"webUrl"`
	LineItems []wireCheckoutLine `json:"lineItems"`
}

type productResponse struct {
	Product wireProduct `json:"product"`
}

type productListResponse struct {
	Products []wireProduct `json:"products"`
}

type collectionListResponse struct {
	Collections []wireCollection `json:"collections"`
}

type checkoutResponse struct {
	Checkout wireCheckout `json:"checkout"`
}

type addLineRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

func toDomainProduct(w wireProduct) (domain.Product, error) {
	p := domain.Product{
		ID:          w.ID,
		Handle:      w.Handle,
		Title:       w.Title,
		Description: w.Description,
		Vendor:      w.Vendor,
		ProductType: w.ProductType,
		Tags:        w.Tags,
		Available:   w.AvailableForSale,
	}
	for _, img := range w.Images {
		p.Images = append(p.Images, toDomainImage(img))
	}
	for _, v := range w.Variants {
		dv, err := toDomainVariant(v)
		if err != nil {
			return domain.Product{}, err
		}
		p.Variants = append(p.Variants, dv)
	}
	return p, nil
}

func toDomainVariant(w wireVariant) (domain.Variant, error) {
	price, err := domain.NewMoney(w.PriceV2.Amount, w.PriceV2.CurrencyCode)
	if err != nil {
		return domain.Variant{}, err
	}
	v := domain.Variant{
		ID:        w.ID,
		Title:     w.Title,
		Price:     price,
		Available: w.AvailableForSale,
	}
	for _, o := range w.SelectedOptions {
		v.Options = append(v.Options, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	if w.Image != nil {
		img := toDomainImage(*w.Image)
		v.Image = &img
	}
	return v, nil
}

func toDomainImage(w wireImage) domain.Image {
	return domain.Image{ID: w.ID, URL: w.Src, AltText: w.AltText}
}

func toDomainProducts(ws []wireProduct) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ws))
	for _, w := range ws {
		p, err := toDomainProduct(w)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toSession(w wireCheckout) *Session {
	s := &Session{ID: w.ID, RedirectURL: w.WebURL}
	for _, l := range w.LineItems {
		s.Lines = append(s.Lines, SessionLine{LineID: l.ID, VariantID: l.VariantID, Quantity: l.Quantity})
	}
	return s
}
