package entity

type ProductCategory string

const (
	CategoryMen    ProductCategory = "men"
	CategoryWomen  ProductCategory = "women"
	CategoryUnisex ProductCategory = "unisex"
)

type Product struct {
	Base
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Category    ProductCategory `db:"category"`
	PriceCents  int64           `db:"price_cents"`
	ImageURL    *string         `db:"image_url"`
	Stock       int             `db:"stock"`
}
