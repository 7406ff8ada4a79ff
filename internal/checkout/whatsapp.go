// Package checkout turns a cart into a WhatsApp order handoff: a plain-text
// order summary URL-encoded into a wa.me deep link. Firing the link is
// fire-and-forget; there is no delivery confirmation and no retry.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

const (
	// FreeDeliveryThreshold is the subtotal at which delivery becomes free.
	FreeDeliveryThreshold = 499
	// DeliveryFee is the flat charge below the threshold, in rupees.
	DeliveryFee = 49

	storeName = "Scrunch & Create"
)

// DeliveryFeeFor applies the threshold rule.
func DeliveryFeeFor(subtotal int) int {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFee
}

// ShippingDetails is the checkout form. All fields are required; see
// Validate.
type ShippingDetails struct {
	Name         string
	Phone        string
	Email        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Country      string
}

// Address joins the address fields into one display line.
func (d ShippingDetails) Address() string {
	parts := []string{d.AddressLine1}
	if d.AddressLine2 != "" {
		parts = append(parts, d.AddressLine2)
	}
	parts = append(parts, d.City, d.State, d.Pincode, d.Country)
	return strings.Join(parts, ", ")
}

// FormatOrder composes the order summary and returns the wa.me URI. The
// shipping block is included when details is non-nil. Prices come straight
// from the cart lines; nothing is re-resolved against the catalog here.
func FormatOrder(phoneNumber string, items []models.CartItem, subtotal int, details *ShippingDetails) string {
	delivery := DeliveryFeeFor(subtotal)
	total := subtotal + delivery

	var b strings.Builder
	fmt.Fprintf(&b, "Order from %s\n\nItems:\n", storeName)

	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, item.Name)
		if item.Category != "" {
			fmt.Fprintf(&b, "\n   Category: %s", item.Category)
		}
		if item.Type != "" {
			fmt.Fprintf(&b, "\n   Variant: %s", item.Type)
		}
		if item.Color != "" {
			fmt.Fprintf(&b, "\n   Color: %s", item.Color)
		}
		fmt.Fprintf(&b, "\n   Quantity: %d", item.Qty)
		fmt.Fprintf(&b, "\n   Price: ₹%s\n", FormatINR(item.Price))
	}

	fmt.Fprintf(&b, "\nSubtotal: ₹%s", FormatINR(subtotal))
	if delivery == 0 {
		b.WriteString("\nDelivery: Free")
	} else {
		fmt.Fprintf(&b, "\nDelivery: ₹%s", FormatINR(delivery))
	}
	fmt.Fprintf(&b, "\nTotal Payable: ₹%s", FormatINR(total))

	if details != nil {
		fmt.Fprintf(&b, "\n\nDeliver To:\n%s\nPhone: %s\n%s",
			details.Name, details.Phone, details.Address())
	}

	b.WriteString("\n\nCustomer Message:\nHi, I want to place this order. Please confirm availability and shipping details.")

	return "https://wa.me/" + phoneNumber + "?text=" + encodeText(b.String())
}

// encodeText percent-encodes like encodeURIComponent: spaces become %20,
// not "+", since wa.me renders the raw query value.
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatINR groups digits in the Indian numbering style: the last three,
// then pairs, e.g. 123456 -> "1,23,456".
func FormatINR(n int) string {
	if n < 0 {
		return "-" + FormatINR(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
