/**
 * @description
 * Country reference data: the read-only lookup used to resolve a registration
 * country into a currency, plus the embedded fallback list served when the
 * store is unreachable or empty.
 */

package domain

// Country is one row of the read-only country reference table.
type Country struct {
	CountryCode    string `json:"country_code"`
	CountryName    string `json:"country_name"`
	PhoneCode      string `json:"phone_code"`
	CurrencyCode   string `json:"currency_code"`
	CurrencySymbol string `json:"currency_symbol"`
}

// DefaultCurrency is used when a registration country has no reference entry.
const DefaultCurrency = "USD"

// FallbackCountries is served whenever the countries table cannot be read.
var FallbackCountries = []Country{
	{CountryCode: "US", CountryName: "United States", PhoneCode: "+1", CurrencyCode: "USD", CurrencySymbol: "$"},
	{CountryCode: "KE", CountryName: "Kenya", PhoneCode: "+254", CurrencyCode: "KES", CurrencySymbol: "KSh"},
	{CountryCode: "UK", CountryName: "United Kingdom", PhoneCode: "+44", CurrencyCode: "GBP", CurrencySymbol: "£"},
	{CountryCode: "NG", CountryName: "Nigeria", PhoneCode: "+234", CurrencyCode: "NGN", CurrencySymbol: "₦"},
	{CountryCode: "IN", CountryName: "India", PhoneCode: "+91", CurrencyCode: "INR", CurrencySymbol: "₹"},
}
