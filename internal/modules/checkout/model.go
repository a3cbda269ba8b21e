package checkout

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/samytrends/retail-api/internal/money"
)

var (
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// ShippingDetails is the delivery form submitted at checkout.
type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// ValidationErrors maps field names to messages so the storefront can
// highlight the offending inputs.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	b, _ := json.Marshal(map[string]ValidationErrors{"fields": v})
	return string(b)
}

// Validate checks all shipping fields and returns every failure at once.
func (d *ShippingDetails) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(d.FullName) == "" {
		errs["full_name"] = "full name is required"
	}
	if !emailPattern.MatchString(d.Email) {
		errs["email"] = "a valid email address is required"
	}
	if !phonePattern.MatchString(d.Phone) {
		errs["phone"] = "phone must be exactly 10 digits"
	}
	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(d.State) == "" {
		errs["state"] = "state is required"
	}
	if !pincodePattern.MatchString(d.Pincode) {
		errs["pincode"] = "pincode must be exactly 6 digits"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Quote is the priced view of the current cart before payment.
type Quote struct {
	Subtotal   money.Paise `json:"subtotal"`
	Shipping   money.Paise `json:"shipping"`
	TaxPercent int         `json:"tax_percent"`
	Tax        money.Paise `json:"tax"`
	Total      money.Paise `json:"total"`
}
