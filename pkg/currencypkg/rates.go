package currencypkg

import "github.com/shopspring/decimal"

// rates holds the directed exchange rate table. Rates are asymmetric on
// purpose (the two directions encode a spread) and must not be derived
// from one another.
var rates = map[string]map[string]string{
	USD: {
		USD: "1", EUR: "0.93", GBP: "0.80", NGN: "1500",
		CAD: "1.37", AUD: "1.52", JPY: "157", CNY: "7.25",
		INR: "83.5", BRL: "5.15", ZAR: "18.7",
	},
	EUR: {
		USD: "1.08", EUR: "1", GBP: "0.86", NGN: "1610",
		CAD: "1.47", AUD: "1.63", JPY: "169", CNY: "7.80",
		INR: "90", BRL: "5.55", ZAR: "20.1",
	},
	GBP: {
		USD: "1.25", EUR: "1.16", GBP: "1", NGN: "1875",
		CAD: "1.71", AUD: "1.90", JPY: "196", CNY: "9.05",
		INR: "104.5", BRL: "6.45", ZAR: "23.4",
	},
	NGN: {
		USD: "0.00067", EUR: "0.00062", GBP: "0.00053", NGN: "1",
		CAD: "0.00091", AUD: "0.00101", JPY: "0.105", CNY: "0.0048",
		INR: "0.055", BRL: "0.0034", ZAR: "0.0125",
	},
	CAD: {
		USD: "0.73", EUR: "0.68", GBP: "0.58", NGN: "1095",
		CAD: "1", AUD: "1.11", JPY: "114.5", CNY: "5.30",
		INR: "61", BRL: "3.76", ZAR: "13.65",
	},
	AUD: {
		USD: "0.66", EUR: "0.61", GBP: "0.53", NGN: "988",
		CAD: "0.90", AUD: "1", JPY: "103", CNY: "4.77",
		INR: "55", BRL: "3.39", ZAR: "12.3",
	},
	JPY: {
		USD: "0.0064", EUR: "0.0059", GBP: "0.0051", NGN: "9.55",
		CAD: "0.0087", AUD: "0.0097", JPY: "1", CNY: "0.046",
		INR: "0.53", BRL: "0.033", ZAR: "0.12",
	},
	CNY: {
		USD: "0.138", EUR: "0.128", GBP: "0.110", NGN: "207",
		CAD: "0.189", AUD: "0.210", JPY: "21.6", CNY: "1",
		INR: "11.5", BRL: "0.71", ZAR: "2.58",
	},
	INR: {
		USD: "0.0120", EUR: "0.0111", GBP: "0.0096", NGN: "18",
		CAD: "0.0164", AUD: "0.0182", JPY: "1.88", CNY: "0.087",
		INR: "1", BRL: "0.062", ZAR: "0.224",
	},
	BRL: {
		USD: "0.194", EUR: "0.180", GBP: "0.155", NGN: "291",
		CAD: "0.266", AUD: "0.295", JPY: "30.4", CNY: "1.41",
		INR: "16.2", BRL: "1", ZAR: "3.63",
	},
	ZAR: {
		USD: "0.0535", EUR: "0.0497", GBP: "0.0428", NGN: "80",
		CAD: "0.0733", AUD: "0.0813", JPY: "8.37", CNY: "0.388",
		INR: "4.46", BRL: "0.275", ZAR: "1",
	},
}

// Rate returns the directed exchange rate between two currencies or a
// zero decimal when no rate is configured. Every supported currency has
// a self-rate of exactly 1.
func Rate(from, to string) decimal.Decimal {
	row, ok := rates[from]
	if !ok {
		return decimal.Zero
	}

	r, ok := row[to]
	if !ok {
		return decimal.Zero
	}

	return decimal.RequireFromString(r)
}
