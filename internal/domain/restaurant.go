package domain

import "time"

type Restaurant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	CuisineHint string    `json:"cuisine_hint"` // free text, e.g. "Sichuan / spicy"
	CreatedAt   time.Time `json:"created_at"`
}
