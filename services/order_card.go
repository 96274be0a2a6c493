package services

import (
	"fmt"
	"strings"

	"sparkmeals/models"
)

const (
	confirmationHeader = "Order Confirmation"
	confirmationFooter = "Thank you for choosing our service!"

	ButtonTrackOrder     = "track_order"
	ButtonContactSupport = "contact_support"
)

// WhatsAppButton is one quick-reply button on a WhatsApp message.
type WhatsAppButton struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// WhatsAppMessage is the body posted to the messaging API.
type WhatsAppMessage struct {
	Phone   string           `json:"phone"`
	Message string           `json:"message"`
	Header  string           `json:"header,omitempty"`
	Footer  string           `json:"footer,omitempty"`
	Buttons []WhatsAppButton `json:"buttons,omitempty"`
}

// OrderCardButton is one inline button (text + callback_data or url).
type OrderCardButton struct {
	Text         string
	CallbackData string
	URL          string // if set, use as URL button instead of callback
}

// OrderCardContent is the text and optional inline keyboard for an order card.
type OrderCardContent struct {
	Text    string
	Buttons [][]OrderCardButton
}

// BuildConfirmation returns the customer confirmation for an order.
func BuildConfirmation(phone string, details *models.OrderDetails, total models.Amount) WhatsAppMessage {
	text := fmt.Sprintf("Thank you for your order, %s!\n\nOrder Details:\n%dx %s\nTotal: $%s",
		details.FormData.FullName, details.Quantity, details.Meal.Name, total.Text())
	return WhatsAppMessage{
		Phone:   phone,
		Message: text,
		Header:  confirmationHeader,
		Footer:  confirmationFooter,
		Buttons: []WhatsAppButton{
			{ID: ButtonTrackOrder, Title: "Track Order"},
			{ID: ButtonContactSupport, Title: "Contact Support"},
		},
	}
}

// BuildStaffCard returns the kitchen card for a relayed order.
func BuildStaffCard(ref, phone string, details *models.OrderDetails, total models.Amount) OrderCardContent {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ New order %s\n\n", shortRef(ref))
	fmt.Fprintf(&b, "%dx %s\n", details.Quantity, details.Meal.Name)
	fmt.Fprintf(&b, "Total: $%s\n\n", total.Text())
	if details.FormData.FullName != "" {
		fmt.Fprintf(&b, "👤 %s\n", details.FormData.FullName)
	}
	fmt.Fprintf(&b, "📞 %s\n", phone)
	if details.FormData.Email != "" {
		fmt.Fprintf(&b, "✉️ %s\n", details.FormData.Email)
	}
	if details.FormData.Address != "" {
		fmt.Fprintf(&b, "📍 %s\n", details.FormData.Address)
	}
	if details.FormData.Instructions != "" {
		fmt.Fprintf(&b, "📝 %s\n", details.FormData.Instructions)
	}

	var buttons [][]OrderCardButton
	if digits := phoneDigits(phone); digits != "" {
		buttons = [][]OrderCardButton{{{Text: "💬 Chat on WhatsApp", URL: "https://wa.me/" + digits}}}
	}
	return OrderCardContent{Text: strings.TrimRight(b.String(), "\n"), Buttons: buttons}
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return "#" + ref[:8]
	}
	return "#" + ref
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
