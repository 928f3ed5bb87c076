package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MenuItem is a single dish offered by a restaurant. RestaurantID is carried
// as an opaque reference; readers never resolve it.
type MenuItem struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        Price     `json:"price"`
	Currency     string    `json:"currency"`
	IsSignature  bool      `json:"is_signature"`
	RegionTags   []string  `json:"region_tags"`
	FlavorTags   []string  `json:"flavor_tags"`
	CreatedAt    time.Time `json:"created_at"`
}

const DefaultCurrency = "USD"

// MaxPriceAmount caps prices and price bounds, in major units. It keeps
// cents well inside int64.
const MaxPriceAmount = 1_000_000

// Price is a non-negative amount in minor units (cents). It renders as a
// decimal number with two fractional digits.
type Price int64

// PriceFromFloat rounds f to the nearest cent.
func PriceFromFloat(f float64) (Price, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("price must be a finite number")
	}
	if f < 0 {
		return 0, fmt.Errorf("price must be >= 0")
	}
	if f > MaxPriceAmount {
		return 0, fmt.Errorf("price must be <= %d", MaxPriceAmount)
	}
	return Price(math.Round(f * 100)), nil
}

// ParsePrice accepts "15", "15.5", "15.50" and the comma form "15,50".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("price is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	return PriceFromFloat(f)
}

func (p Price) Cents() int64 { return int64(p) }

func (p Price) Float() float64 { return float64(p) / 100 }

func (p Price) String() string { return strconv.FormatFloat(p.Float(), 'f', 2, 64) }

func (p Price) MarshalJSON() ([]byte, error) { return []byte(p.String()), nil }

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	v, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
