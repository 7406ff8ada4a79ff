package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

func TestDeliveryFeeThreshold(t *testing.T) {
	assert.Equal(t, 49, DeliveryFeeFor(450))
	assert.Equal(t, 49, DeliveryFeeFor(498))
	assert.Equal(t, 0, DeliveryFeeFor(499))
	assert.Equal(t, 0, DeliveryFeeFor(500))
}

func decodeText(t *testing.T, uri string) string {
	t.Helper()
	u, err := url.Parse(uri)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestFormatOrderMessage(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Satin Hairbow Navy", Category: "HairBow", Type: "Satin", Color: "Navy", Price: 79, Qty: 2},
		{ID: "p2", Name: "Tulip Scrunchie Sage", Category: "Scrunchie", Price: 69, Qty: 1},
	}
	uri := FormatOrder("911234567890", items, 227, nil)
	assert.True(t, strings.HasPrefix(uri, "https://wa.me/911234567890?text="))

	msg := decodeText(t, uri)
	assert.Contains(t, msg, "Order from Scrunch & Create")
	assert.Contains(t, msg, "1. Satin Hairbow Navy")
	assert.Contains(t, msg, "   Category: HairBow")
	assert.Contains(t, msg, "   Variant: Satin")
	assert.Contains(t, msg, "   Color: Navy")
	assert.Contains(t, msg, "   Quantity: 2")
	assert.Contains(t, msg, "   Price: ₹79")
	assert.Contains(t, msg, "2. Tulip Scrunchie Sage")
	// the second item has no type/color lines
	assert.NotContains(t, msg, "Variant: \n")
	assert.Contains(t, msg, "Subtotal: ₹227")
	assert.Contains(t, msg, "Delivery: ₹49")
	assert.Contains(t, msg, "Total Payable: ₹276")
	assert.Contains(t, msg, "Customer Message:")
}

func TestFormatOrderFreeDelivery(t *testing.T) {
	items := []models.CartItem{{ID: "p", Name: "Satin Hamper", Price: 699, Qty: 1}}
	msg := decodeText(t, FormatOrder("911234567890", items, 699, nil))
	assert.Contains(t, msg, "Delivery: Free")
	assert.Contains(t, msg, "Total Payable: ₹699")
}

func TestFormatOrderShippingBlock(t *testing.T) {
	d := &ShippingDetails{
		Name: "Asha Rao", Phone: "9876543210", Email: "asha@example.com",
		AddressLine1: "12 Lake View", City: "Chennai", State: "TN",
		Pincode: "600001", Country: "India",
	}
	msg := decodeText(t, FormatOrder("911234567890", []models.CartItem{{ID: "p", Name: "X", Price: 40, Qty: 1}}, 40, d))
	assert.Contains(t, msg, "Deliver To:\nAsha Rao")
	assert.Contains(t, msg, "Phone: 9876543210")
	assert.Contains(t, msg, "12 Lake View, Chennai, TN, 600001, India")
}

func TestEncodeTextUsesPercent20(t *testing.T) {
	uri := FormatOrder("91", []models.CartItem{{ID: "p", Name: "Two Words", Price: 40, Qty: 1}}, 40, nil)
	assert.NotContains(t, uri, "+")
	assert.Contains(t, uri, "%20")
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"}, {49, "49"}, {999, "999"},
		{1599, "1,599"}, {12345, "12,345"},
		{123456, "1,23,456"}, {1234567, "12,34,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.n), "n=%d", tt.n)
	}
}

func TestShippingValidation(t *testing.T) {
	good := ShippingDetails{
		Name: "Asha", Phone: "9876543210", Email: "a@b.co",
		AddressLine1: "12 Lake View", City: "Chennai", State: "TN",
		Pincode: "600001", Country: "India",
	}
	assert.Empty(t, good.Validate())

	bad := ShippingDetails{Phone: "12345", Email: "nope", Pincode: "60000"}
	errs := bad.Validate()
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Enter a valid 10-digit phone number", errs["phone"])
	assert.Equal(t, "Enter a valid email", errs["email"])
	assert.Equal(t, "Address is required", errs["addressLine1"])
	assert.Equal(t, "City is required", errs["city"])
	assert.Equal(t, "State is required", errs["state"])
	assert.Equal(t, "Enter a valid 6-digit pincode", errs["pincode"])
	assert.Equal(t, "Country is required", errs["country"])
}

func TestNewOrderRef(t *testing.T) {
	seen := map[string]bool{}
	for range 50 {
		ref := NewOrderRef()
		assert.Len(t, ref, 8)
		for _, c := range ref {
			assert.NotContains(t, "IO01", string(c))
		}
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 1)
}
