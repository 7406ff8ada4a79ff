package checkout

import (
	"crypto/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

// Validate returns field-level error messages keyed by form field name. An
// empty map means the form is good to submit.
func (d ShippingDetails) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch phone := strings.TrimSpace(d.Phone); {
	case phone == "":
		errs["phone"] = "Phone is required"
	case !phoneRe.MatchString(phone):
		errs["phone"] = "Enter a valid 10-digit phone number"
	}
	switch email := strings.TrimSpace(d.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Enter a valid email"
	}
	if strings.TrimSpace(d.AddressLine1) == "" {
		errs["addressLine1"] = "Address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(d.State) == "" {
		errs["state"] = "State is required"
	}
	switch pin := strings.TrimSpace(d.Pincode); {
	case pin == "":
		errs["pincode"] = "Pincode is required"
	case !pincodeRe.MatchString(pin):
		errs["pincode"] = "Enter a valid 6-digit pincode"
	}
	if strings.TrimSpace(d.Country) == "" {
		errs["country"] = "Country is required"
	}
	return errs
}

// orderRefCharset omits I, O, 0, and 1 to keep refs unambiguous when read
// back over chat.
const orderRefCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderRef generates an 8-character public order reference.
func NewOrderRef() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "ORD" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = orderRefCharset[int(b[i])%len(orderRefCharset)]
	}
	return string(b)
}
