package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Meal struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

const (
	CategoryAll       = "All"
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
)

// MarshalJSON writes the price as a JSON number with two decimals.
func (m Meal) MarshalJSON() ([]byte, error) {
	type alias Meal
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{
		alias: alias(m),
		Price: json.Number(m.Price.StringFixed(2)),
	})
}
