package request

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category" validate:"required,oneof=men women unisex"`
	PriceCents  int64   `json:"price_cents" validate:"required,min=1"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"min=0"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=men women unisex"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// ProductListRequest carries the catalog filters: q is a case-insensitive
// name search, category an exact match.
type ProductListRequest struct {
	Query    *string `json:"q,omitempty"`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=men women unisex"`
}
