package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormData is the customer contact and delivery block of the order form.
type FormData struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Instructions string `json:"instructions"`
}

// Amount is a money value that remembers the text it was decoded from,
// so "28.9" is shown back as "28.9".
type Amount struct {
	decimal.Decimal
	raw string
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON accepts both "12.99" and 12.99.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return err
	}
	a.raw = strings.TrimSpace(strings.Trim(string(b), `"`))
	return nil
}

// Text returns the decoded text, or the value with two decimals.
func (a Amount) Text() string {
	if a.raw != "" {
		return a.raw
	}
	return a.StringFixed(2)
}

// OrderDetails is the transient order payload relayed to the messaging API.
// A nil Total means it is computed from the meal.
type OrderDetails struct {
	Meal     Meal     `json:"meal"`
	Quantity int      `json:"quantity"`
	FormData FormData `json:"formData"`
	Total    *Amount  `json:"total,omitempty"`
}

// NotificationRecord is one row of order_notifications.
type NotificationRecord struct {
	Reference      string
	Phone          string
	MealID         int
	MealName       string
	Quantity       int
	Total          decimal.Decimal
	UpstreamStatus int
	Error          string
}
