package service

// reservedSymbols are three-letter tickers already registered on the New
// York Stock Exchange; a new enterprise may not claim one of them. The
// original deployment refreshed this list from the exchange's symbol
// directory at startup; a fixed snapshot keeps the service self-contained.
var reservedSymbols = map[string]bool{
	"IBM": true, "GEO": true, "AAP": true, "ABC": true, "ABT": true,
	"ADM": true, "AEE": true, "AEP": true, "AES": true, "AIG": true,
	"ALL": true, "AMD": true, "AMT": true, "APA": true, "AXP": true,
	"BAC": true, "BAX": true, "BBY": true, "BDX": true, "BEN": true,
	"BLL": true, "BMY": true, "CAH": true, "CAT": true, "CCL": true,
	"CHD": true, "CLX": true, "CMA": true, "CMI": true, "COF": true,
	"COP": true, "CVS": true, "CVX": true, "DAL": true, "DHR": true,
	"DOV": true, "DOW": true, "DTE": true, "DUK": true, "ECL": true,
	"EMR": true, "EOG": true, "ETN": true, "FDX": true, "FLS": true,
	"GME": true, "GPC": true, "GPS": true, "GWW": true, "HAL": true,
	"HES": true, "HIG": true, "HON": true, "HPQ": true, "HUM": true,
	"ITW": true, "JCI": true, "JNJ": true, "JPM": true, "KEY": true,
	"KMB": true, "KSS": true, "LEG": true, "LEN": true, "LLY": true,
	"LMT": true, "LNC": true, "LOW": true, "LUV": true, "MCD": true,
	"MCK": true, "MDT": true, "MET": true, "MMC": true, "MMM": true,
	"MRK": true, "MRO": true, "MSI": true, "NEE": true, "NKE": true,
	"NOC": true, "NUE": true, "OKE": true, "OXY": true, "PEG": true,
	"PFE": true, "PGR": true, "PHM": true, "PNC": true, "PPG": true,
	"PPL": true, "PRU": true, "PSA": true, "PVH": true, "PWR": true,
	"RCL": true, "RHI": true, "RSG": true, "RTX": true, "SEE": true,
	"SHW": true, "SLB": true, "SPG": true, "SYK": true, "SYY": true,
	"TAP": true, "TGT": true, "TJX": true, "TMO": true, "TRV": true,
	"TSN": true, "TXT": true, "UNH": true, "UNP": true, "UPS": true,
	"USB": true, "VFC": true, "VLO": true, "VMC": true, "VTR": true,
	"WAT": true, "WEC": true, "WFC": true, "WHR": true, "WMB": true,
	"WMT": true, "WST": true, "XOM": true, "XRX": true, "YUM": true,
}

// SymbolReserved reports whether the ticker is on the reserved list.
func SymbolReserved(symbol string) bool {
	return reservedSymbols[symbol]
}
