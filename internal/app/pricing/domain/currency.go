package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/light-bringer/pricing-service/internal/pkg/amount"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

// Currency is an ISO-4217 code known to the registry.
type Currency string

const (
	EGP Currency = "EGP"
	SAR Currency = "SAR"
	AED Currency = "AED"
	USD Currency = "USD"
	KWD Currency = "KWD"
	QAR Currency = "QAR"
	BHD Currency = "BHD"
	OMR Currency = "OMR"
	JOD Currency = "JOD"
	LBP Currency = "LBP"
	MAD Currency = "MAD"
	TND Currency = "TND"
	DZD Currency = "DZD"
	LYD Currency = "LYD"
	SDG Currency = "SDG"
	IQD Currency = "IQD"
	SYP Currency = "SYP"
	YER Currency = "YER"
	ILS Currency = "ILS"
)

// CurrencyInfo holds display data for a currency.
type CurrencyInfo struct {
	Code     Currency
	SymbolEN string
	SymbolAR string
	NameEN   string
	NameAR   string
	// Pricing currencies can carry entity prices; the rest are only used for geolocation display.
	Pricing bool
	// SymbolFirst places the English symbol before the amount ("$12.50").
	SymbolFirst bool
}

var registry = map[Currency]CurrencyInfo{
	EGP: {Code: EGP, SymbolEN: "EGP", SymbolAR: "ج.م", NameEN: "Egyptian Pound", NameAR: "جنيه مصري", Pricing: true},
	SAR: {Code: SAR, SymbolEN: "SAR", SymbolAR: "ر.س", NameEN: "Saudi Riyal", NameAR: "ريال سعودي", Pricing: true},
	AED: {Code: AED, SymbolEN: "AED", SymbolAR: "د.إ", NameEN: "UAE Dirham", NameAR: "درهم إماراتي", Pricing: true},
	USD: {Code: USD, SymbolEN: "$", SymbolAR: "$", NameEN: "US Dollar", NameAR: "دولار أمريكي", Pricing: true, SymbolFirst: true},
	KWD: {Code: KWD, SymbolEN: "KWD", SymbolAR: "د.ك", NameEN: "Kuwaiti Dinar", NameAR: "دينار كويتي"},
	QAR: {Code: QAR, SymbolEN: "QAR", SymbolAR: "ر.ق", NameEN: "Qatari Riyal", NameAR: "ريال قطري"},
	BHD: {Code: BHD, SymbolEN: "BHD", SymbolAR: "د.ب", NameEN: "Bahraini Dinar", NameAR: "دينار بحريني"},
	OMR: {Code: OMR, SymbolEN: "OMR", SymbolAR: "ر.ع", NameEN: "Omani Rial", NameAR: "ريال عماني"},
	JOD: {Code: JOD, SymbolEN: "JOD", SymbolAR: "د.أ", NameEN: "Jordanian Dinar", NameAR: "دينار أردني"},
	LBP: {Code: LBP, SymbolEN: "LBP", SymbolAR: "ل.ل", NameEN: "Lebanese Pound", NameAR: "ليرة لبنانية"},
	MAD: {Code: MAD, SymbolEN: "MAD", SymbolAR: "د.م", NameEN: "Moroccan Dirham", NameAR: "درهم مغربي"},
	TND: {Code: TND, SymbolEN: "TND", SymbolAR: "د.ت", NameEN: "Tunisian Dinar", NameAR: "دينار تونسي"},
	DZD: {Code: DZD, SymbolEN: "DZD", SymbolAR: "د.ج", NameEN: "Algerian Dinar", NameAR: "دينار جزائري"},
	LYD: {Code: LYD, SymbolEN: "LYD", SymbolAR: "د.ل", NameEN: "Libyan Dinar", NameAR: "دينار ليبي"},
	SDG: {Code: SDG, SymbolEN: "SDG", SymbolAR: "ج.س", NameEN: "Sudanese Pound", NameAR: "جنيه سوداني"},
	IQD: {Code: IQD, SymbolEN: "IQD", SymbolAR: "د.ع", NameEN: "Iraqi Dinar", NameAR: "دينار عراقي"},
	SYP: {Code: SYP, SymbolEN: "SYP", SymbolAR: "ل.س", NameEN: "Syrian Pound", NameAR: "ليرة سورية"},
	YER: {Code: YER, SymbolEN: "YER", SymbolAR: "ر.ي", NameEN: "Yemeni Rial", NameAR: "ريال يمني"},
	ILS: {Code: ILS, SymbolEN: "ILS", SymbolAR: "₪", NameEN: "Israeli Shekel", NameAR: "شيكل"},
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := registry[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// ParsePricingCurrency is ParseCurrency restricted to currencies that can carry prices.
func ParsePricingCurrency(code string) (Currency, error) {
	c, err := ParseCurrency(code)
	if err != nil {
		return "", err
	}
	if !c.IsPricing() {
		return "", fmt.Errorf("%w: %s is not a pricing currency", ErrUnsupportedCurrency, c)
	}
	return c, nil
}

// LookupCurrency returns the registry entry for c.
func LookupCurrency(c Currency) (CurrencyInfo, bool) {
	info, ok := registry[c]
	return info, ok
}

// PricingCurrencies returns the currencies entity prices can be set in, in display order.
func PricingCurrencies() []Currency {
	return []Currency{EGP, SAR, AED, USD}
}

// AllCurrencies returns every registered code sorted alphabetically.
func AllCurrencies() []Currency {
	out := make([]Currency, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c Currency) String() string { return string(c) }

func (c Currency) IsPricing() bool {
	return registry[c].Pricing
}

// Symbol returns the display symbol for the locale. Unknown codes render as the code itself.
func (c Currency) Symbol(loc locale.Locale) string {
	info, ok := registry[c]
	if !ok {
		return string(c)
	}
	if loc == locale.Arabic {
		return info.SymbolAR
	}
	return info.SymbolEN
}

// Name returns the localized currency name.
func (c Currency) Name(loc locale.Locale) string {
	info, ok := registry[c]
	if !ok {
		return string(c)
	}
	if loc == locale.Arabic {
		return info.NameAR
	}
	return info.NameEN
}

// FormatAmount renders m for display: whole amounts without decimals ("700 EGP"), fractional
// amounts with two ("699.50 EGP").
func FormatAmount(m *Money, c Currency, loc locale.Locale) string {
	places := int32(2)
	if m.Round2().IsWhole() {
		places = 0
	}
	num := amount.Format(m.Rat(), places)
	symbol := c.Symbol(loc)
	if loc != locale.Arabic && registry[c].SymbolFirst {
		return symbol + num
	}
	return num + " " + symbol
}
