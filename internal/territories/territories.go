package territories

import "appstore-pricing-service/internal/models"

// The vendor identifies storefronts by 3-letter territory codes that
// are not always ISO-3166 country codes, so rendering a human name
// requires a lookup table. The table covers the common storefronts;
// unknown codes fall back to the raw code.
var table = map[string]models.Territory{
	"ARE": {Code: "ARE", DisplayName: "United Arab Emirates", CurrencyCode: "AED"},
	"ARG": {Code: "ARG", DisplayName: "Argentina", CurrencyCode: "ARS"},
	"AUS": {Code: "AUS", DisplayName: "Australia", CurrencyCode: "AUD"},
	"AUT": {Code: "AUT", DisplayName: "Austria", CurrencyCode: "EUR"},
	"BEL": {Code: "BEL", DisplayName: "Belgium", CurrencyCode: "EUR"},
	"BGR": {Code: "BGR", DisplayName: "Bulgaria", CurrencyCode: "EUR"},
	"BRA": {Code: "BRA", DisplayName: "Brazil", CurrencyCode: "BRL"},
	"CAN": {Code: "CAN", DisplayName: "Canada", CurrencyCode: "CAD"},
	"CHE": {Code: "CHE", DisplayName: "Switzerland", CurrencyCode: "CHF"},
	"CHL": {Code: "CHL", DisplayName: "Chile", CurrencyCode: "CLP"},
	"CHN": {Code: "CHN", DisplayName: "China mainland", CurrencyCode: "CNY"},
	"COL": {Code: "COL", DisplayName: "Colombia", CurrencyCode: "COP"},
	"CZE": {Code: "CZE", DisplayName: "Czechia", CurrencyCode: "CZK"},
	"DEU": {Code: "DEU", DisplayName: "Germany", CurrencyCode: "EUR"},
	"DNK": {Code: "DNK", DisplayName: "Denmark", CurrencyCode: "DKK"},
	"EGY": {Code: "EGY", DisplayName: "Egypt", CurrencyCode: "EGP"},
	"ESP": {Code: "ESP", DisplayName: "Spain", CurrencyCode: "EUR"},
	"FIN": {Code: "FIN", DisplayName: "Finland", CurrencyCode: "EUR"},
	"FRA": {Code: "FRA", DisplayName: "France", CurrencyCode: "EUR"},
	"GBR": {Code: "GBR", DisplayName: "United Kingdom", CurrencyCode: "GBP"},
	"GRC": {Code: "GRC", DisplayName: "Greece", CurrencyCode: "EUR"},
	"HKG": {Code: "HKG", DisplayName: "Hong Kong", CurrencyCode: "HKD"},
	"HUN": {Code: "HUN", DisplayName: "Hungary", CurrencyCode: "HUF"},
	"IDN": {Code: "IDN", DisplayName: "Indonesia", CurrencyCode: "IDR"},
	"IND": {Code: "IND", DisplayName: "India", CurrencyCode: "INR"},
	"IRL": {Code: "IRL", DisplayName: "Ireland", CurrencyCode: "EUR"},
	"ISR": {Code: "ISR", DisplayName: "Israel", CurrencyCode: "ILS"},
	"ITA": {Code: "ITA", DisplayName: "Italy", CurrencyCode: "EUR"},
	"JPN": {Code: "JPN", DisplayName: "Japan", CurrencyCode: "JPY"},
	"KOR": {Code: "KOR", DisplayName: "South Korea", CurrencyCode: "KRW"},
	"MEX": {Code: "MEX", DisplayName: "Mexico", CurrencyCode: "MXN"},
	"MYS": {Code: "MYS", DisplayName: "Malaysia", CurrencyCode: "MYR"},
	"NGA": {Code: "NGA", DisplayName: "Nigeria", CurrencyCode: "NGN"},
	"NLD": {Code: "NLD", DisplayName: "Netherlands", CurrencyCode: "EUR"},
	"NOR": {Code: "NOR", DisplayName: "Norway", CurrencyCode: "NOK"},
	"NZL": {Code: "NZL", DisplayName: "New Zealand", CurrencyCode: "NZD"},
	"PER": {Code: "PER", DisplayName: "Peru", CurrencyCode: "PEN"},
	"PHL": {Code: "PHL", DisplayName: "Philippines", CurrencyCode: "PHP"},
	"POL": {Code: "POL", DisplayName: "Poland", CurrencyCode: "PLN"},
	"PRT": {Code: "PRT", DisplayName: "Portugal", CurrencyCode: "EUR"},
	"ROU": {Code: "ROU", DisplayName: "Romania", CurrencyCode: "RON"},
	"RUS": {Code: "RUS", DisplayName: "Russia", CurrencyCode: "RUB"},
	"SAU": {Code: "SAU", DisplayName: "Saudi Arabia", CurrencyCode: "SAR"},
	"SGP": {Code: "SGP", DisplayName: "Singapore", CurrencyCode: "SGD"},
	"SWE": {Code: "SWE", DisplayName: "Sweden", CurrencyCode: "SEK"},
	"THA": {Code: "THA", DisplayName: "Thailand", CurrencyCode: "THB"},
	"TUR": {Code: "TUR", DisplayName: "Turkey", CurrencyCode: "TRY"},
	"TWN": {Code: "TWN", DisplayName: "Taiwan", CurrencyCode: "TWD"},
	"UKR": {Code: "UKR", DisplayName: "Ukraine", CurrencyCode: "USD"},
	"USA": {Code: "USA", DisplayName: "United States", CurrencyCode: "USD"},
	"VNM": {Code: "VNM", DisplayName: "Vietnam", CurrencyCode: "VND"},
	"ZAF": {Code: "ZAF", DisplayName: "South Africa", CurrencyCode: "ZAR"},
}

// Lookup returns the territory for a vendor code. Unknown codes return
// a territory whose display name is the code itself.
func Lookup(code string) models.Territory {
	if territory, ok := table[code]; ok {
		return territory
	}
	return models.Territory{Code: code, DisplayName: code}
}

// DisplayName returns the human name for a vendor territory code.
func DisplayName(code string) string {
	return Lookup(code).DisplayName
}
