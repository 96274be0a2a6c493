package services

import (
	"sparkmeals/models"

	"github.com/shopspring/decimal"
)

// DefaultDeliveryFee is the flat fee added to every order.
var DefaultDeliveryFee = decimal.RequireFromString("3.99")

func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalcTotal returns round(price*quantity + fee, 2).
func CalcTotal(price decimal.Decimal, quantity int, fee decimal.Decimal) decimal.Decimal {
	return Subtotal(price, quantity).Add(fee).Round(2)
}

// OrderTotal uses the total sent with the order when present, keeping its text.
func OrderTotal(details *models.OrderDetails, fee decimal.Decimal) models.Amount {
	if details.Total != nil {
		return *details.Total
	}
	return models.NewAmount(CalcTotal(details.Meal.Price, details.Quantity, fee))
}

// FormatMoney renders an amount the way the storefront shows prices: "$12.99".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
