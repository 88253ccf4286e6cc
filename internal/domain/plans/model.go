package plans

type Plan struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `json:"name"`
	StripePriceID string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_plans_stripe_price_id" json:"stripe_price_id"`
	Amount        int64  `json:"amount"` // smallest currency unit
	Interval      string `json:"interval"`
}
