package model

// Product is an affiliate shopping link shown in the app's store tab.
// swagger:model Product
type Product struct {
	BaseModel
	Title         string `gorm:"size:200;not null" json:"title"`
	ImageURL      string `gorm:"size:500" json:"imageUrl,omitempty"`
	AffiliateLink string `gorm:"size:500;not null" json:"affiliateLink"`
	Category      string `gorm:"size:100;index" json:"category,omitempty"`
	Active        bool   `gorm:"default:true;index" json:"active"`
}

func (Product) TableName() string {
	return "shopee_products"
}
