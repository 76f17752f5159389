package domain

import "time"

// Product is a catalog entry. Products come from the static catalog table and are never
// mutated by request handling.
type Product struct {
	ID             string            `gorm:"size:64;primaryKey" json:"id" bson:"_id" yaml:"id"`
	Name           string            `gorm:"size:180" json:"name" bson:"name" yaml:"name"`
	Price          int64             `gorm:"not null" json:"price" bson:"price" yaml:"price"`
	OriginalPrice  int64             `gorm:"default:0" json:"originalPrice,omitempty" bson:"original_price,omitempty" yaml:"originalPrice"`
	Category       string            `gorm:"size:100;index" json:"category" bson:"category" yaml:"category"`
	Brand          string            `gorm:"size:100;index" json:"brand" bson:"brand" yaml:"brand"`
	Sizes          []string          `gorm:"type:jsonb;serializer:json" json:"sizes" bson:"sizes" yaml:"sizes"`
	Colors         []ColorVariant    `gorm:"type:jsonb;serializer:json" json:"colors" bson:"colors" yaml:"colors"`
	Images         []string          `gorm:"type:jsonb;serializer:json" json:"images" bson:"images" yaml:"images"`
	Rating         float64           `gorm:"type:decimal(3,2);default:0" json:"rating" bson:"rating" yaml:"rating"`
	ReviewsCount   int               `gorm:"default:0" json:"reviewsCount" bson:"reviews_count" yaml:"reviewsCount"`
	InStock        bool              `gorm:"default:true;index" json:"inStock" bson:"in_stock" yaml:"inStock"`
	Description    string            `gorm:"type:text" json:"description" bson:"description" yaml:"description"`
	Features       []string          `gorm:"type:jsonb;serializer:json" json:"features" bson:"features" yaml:"features"`
	Specifications map[string]string `gorm:"type:jsonb;serializer:json" json:"specifications" bson:"specifications" yaml:"specifications"`
	IsNew          bool              `gorm:"default:false" json:"isNew,omitempty" bson:"is_new" yaml:"isNew"`
	Popularity     float64           `gorm:"default:0" json:"popularity,omitempty" bson:"popularity" yaml:"popularity"`
	CreatedAt      time.Time         `json:"-" bson:"created_at" yaml:"-"`
	UpdatedAt      time.Time         `json:"-" bson:"updated_at" yaml:"-"`
}

type ColorVariant struct {
	Name      string `json:"name" bson:"name" yaml:"name"`
	Value     string `json:"value" bson:"value" yaml:"value"`
	Available bool   `json:"available" bson:"available" yaml:"available"`
}

// Image returns the first image URL or an empty string.
func (p *Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasSize reports whether the product is offered in the given size label.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasAvailableColor reports whether the product offers an available variant named color.
func (p *Product) HasAvailableColor(color string) bool {
	for _, c := range p.Colors {
		if c.Name == color && c.Available {
			return true
		}
	}
	return false
}
