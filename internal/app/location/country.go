package location

import (
	"strings"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// DefaultCountry is used whenever detection fails or yields a country outside the table.
const DefaultCountry = "EG"

// Country is a supported storefront country.
type Country struct {
	Code     string
	Name     string
	Currency domain.Currency
}

var countries = map[string]Country{
	"EG": {Code: "EG", Name: "Egypt", Currency: domain.EGP},
	"SA": {Code: "SA", Name: "Saudi Arabia", Currency: domain.SAR},
	"AE": {Code: "AE", Name: "United Arab Emirates", Currency: domain.AED},
	"KW": {Code: "KW", Name: "Kuwait", Currency: domain.KWD},
	"QA": {Code: "QA", Name: "Qatar", Currency: domain.QAR},
	"BH": {Code: "BH", Name: "Bahrain", Currency: domain.BHD},
	"OM": {Code: "OM", Name: "Oman", Currency: domain.OMR},
	"JO": {Code: "JO", Name: "Jordan", Currency: domain.JOD},
	"LB": {Code: "LB", Name: "Lebanon", Currency: domain.LBP},
	"MA": {Code: "MA", Name: "Morocco", Currency: domain.MAD},
	"TN": {Code: "TN", Name: "Tunisia", Currency: domain.TND},
	"DZ": {Code: "DZ", Name: "Algeria", Currency: domain.DZD},
	"LY": {Code: "LY", Name: "Libya", Currency: domain.LYD},
	"SD": {Code: "SD", Name: "Sudan", Currency: domain.SDG},
	"IQ": {Code: "IQ", Name: "Iraq", Currency: domain.IQD},
	"SY": {Code: "SY", Name: "Syria", Currency: domain.SYP},
	"YE": {Code: "YE", Name: "Yemen", Currency: domain.YER},
	"PS": {Code: "PS", Name: "Palestine", Currency: domain.ILS},
}

// LookupCountry reports whether code is in the supported table.
func LookupCountry(code string) (Country, bool) {
	c, ok := countries[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountryFor maps any code to a supported country, defaulting to Egypt.
func CountryFor(code string) Country {
	if c, ok := LookupCountry(code); ok {
		return c
	}
	return countries[DefaultCountry]
}

// Countries returns the number of supported countries.
func Countries() int {
	return len(countries)
}
