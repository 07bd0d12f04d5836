package domain

import "time"

type Product struct {
	ID            string
	ProductID     string // human-readable product code
	Name          string
	SellingPrice  float64
	ImageURL      string
	StockQuantity int
	CreatedAt     time.Time
}
