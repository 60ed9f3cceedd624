package symbol

// nseLargeCaps maps company names to their NSE tickers on Yahoo Finance.
var nseLargeCaps = map[string]string{
	"Reliance Industries":       "RELIANCE.NS",
	"Tata Consultancy Services": "TCS.NS",
	"Infosys":                   "INFY.NS",
	"HDFC Bank":                 "HDFCBANK.NS",
	"ICICI Bank":                "ICICIBANK.NS",
	"State Bank of India":       "SBIN.NS",
	"ITC Limited":               "ITC.NS",
	"Axis Bank":                 "AXISBANK.NS",
	"Bharti Airtel":             "BHARTIARTL.NS",
	"Hindustan Unilever":        "HINDUNILVR.NS",
	"Kotak Mahindra Bank":       "KOTAKBANK.NS",
	"Bajaj Finance":             "BAJFINANCE.NS",
	"Larsen & Toubro":           "LT.NS",
	"Maruti Suzuki":             "MARUTI.NS",
	"Titan Company":             "TITAN.NS",
	"UltraTech Cement":          "ULTRACEMCO.NS",
	"Mahindra & Mahindra":       "M&M.NS",
	"Sun Pharma":                "SUNPHARMA.NS",
	"Tata Steel":                "TATASTEEL.NS",
	"Power Grid Corporation":    "POWERGRID.NS",
	"ONGC":                      "ONGC.NS",
	"Coal India":                "COALINDIA.NS",
	"Adani Enterprises":         "ADANIENT.NS",
	"Adani Ports":               "ADANIPORTS.NS",
	"Britannia Industries":      "BRITANNIA.NS",
	"Cipla":                     "CIPLA.NS",
	"Hero MotoCorp":             "HEROMOTOCO.NS",
	"Eicher Motors":             "EICHERMOT.NS",
	"Grasim Industries":         "GRASIM.NS",
	"Bajaj Auto":                "BAJAJ-AUTO.NS",
	"HCL Technologies":          "HCLTECH.NS",
	"Tech Mahindra":             "TECHM.NS",
	"Nestle India":              "NESTLEIND.NS",
	"Bank of Baroda":            "BANKBARODA.NS",
	"BPCL":                      "BPCL.NS",
	"HDFC Life":                 "HDFCLIFE.NS",
	"SBI Life Insurance":        "SBILIFE.NS",
}
