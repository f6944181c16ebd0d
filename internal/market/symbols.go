package market

import "strings"

// ExchangeSuffix marks NSE listings on the quote provider.
const ExchangeSuffix = ".NS"

// Nifty500 is the symbol universe requested by the bulk market-data route.
var Nifty500 = []string{
	"360ONE", "3MINDIA", "ABB", "ACC", "AARTIIND", "AAVAS", "ABBOTINDIA", "ABCAPITAL", "ABFRL", "ADANIENT",
	"ADANIGREEN", "ADANIPORTS", "ADANIPOWER", "ATGL", "AWL", "ABSLAMC", "AEGISCHEM", "AETHER", "AFFLE", "AIAENG",
	"AJANTPHARM", "APLAPOLLO", "ALKEM", "ALLCARGO", "ALOKINDS", "AMBER", "AMBUJACEM", "ANGELONE", "ANURAS", "APOLLOHOSP",
	"APOLLOTYRE", "APTUS", "ASAHIINDIA", "ASHOKLEY", "ASIANPAINT", "ASTERDM", "ASTRAL", "AUROPHARMA", "AUBANK", "AVANTIFEED",
	"AXISBANK", "BAJAJ-AUTO", "BAJFINANCE", "BAJAJFINSV", "BAJAJHLDNG", "BALAMINES", "BALKRISIND", "BALRAMCHIN", "BANDHANBNK", "BANKBARODA",
	"BANKINDIA", "MAHABANK", "BATAINDIA", "BAYERCROP", "BDL", "BEL", "BERGEPAINT", "BHARATFORG", "BHEL", "BPCL",
	"BHARTIARTL", "BIOCON", "BIRLACORPN", "BSOFT", "BLUEDART", "BLUESTARCO", "BOSCHLTD", "BRIGADE", "BRITANNIA", "MAPMYINDIA",
	"CANFINHOME", "CANBK", "CAPLIPOINT", "CGCL", "CARBORUNIV", "CASTROLIND", "CEATLTD", "CENTRALBK", "CDSL", "CENTURYPLY",
	"CENTURYTEX", "CERA", "CESC", "CGPOWER", "CHALET", "CHAMBLFERT", "CHEMPLASTS", "CHOLAFIN", "CHOLAHLDNG", "CIPLA",
	"CUB", "CLEAN", "COALINDIA", "COCHINSHIP", "COFORGE", "COLPAL", "CONCOR", "COROMANDEL", "CREDITACC", "CRISIL",
	"CROMPTON", "CUMMINSIND", "CYIENT", "DABUR", "DALBHARAT", "DEEPAKNTR", "DELHIVERY", "DEVYANI", "DIVISLAB", "DIXON",
	"DLF", "DRREDDY", "ECLERX", "EDELWEISS", "EICHERMOT", "EIDPARRY", "EIHOTEL", "ELGIEQUIP", "EMAMILTD", "ENDURANCE",
	"ENGINERSIN", "EQUITASBNK", "ERIS", "ESCORTS", "EXIDEIND", "FDC", "FEDERALBNK", "FACT", "FINCABLES", "FINEORG",
	"FINPIPE", "FIVESTAR", "FORTIS", "GRINFRA", "GAIL", "GMRINFRA", "GLAND", "GLAXO", "GLENMARK", "GNFC",
	"GOCOLORS", "GODFRYPHLP", "GODREJCP", "GODREJIND", "GODREJPROP", "GRANULES", "GRAPHITE", "GRASIM", "GESHIP", "GSFC",
	"GSPL", "GTPL", "GUJALKALI", "GUJGASLTD", "HAL", "HAVELLS", "HCLTECH", "HDFCAMC", "HDFCBANK", "HDFCLIFE",
	"HEG", "HEROMOTOCO", "HFCL", "HIKAL", "HINDALCO", "HINDCOPPER", "HINDPETRO", "HINDUNILVR", "HINDZINC", "POWERINDIA",
	"HONAUT", "HUDCO", "IBULHSGFIN", "ICICIBANK", "ICICIGI", "ICICIPRULI", "IDBI", "IDFCFIRSTB", "IDFC", "IFBIND",
	"IEX", "IIFL", "IRB", "IRCON", "IRCTC", "IRFC", "INDHOTEL", "INDIACEM", "INDIAMART", "INDIANB",
	"INDIGO", "INDOCO", "INDUSINDBK", "NAUKRI", "INDTOWER", "INFY", "IOB", "IOC", "IPCALAB", "ITC",
	"JBCHEPHARM", "JKCEMENT", "JKLAKSHMI", "JKPAPER", "JMFINANCIL", "JSL", "JINDALSTEL", "JSWENERGY", "JSWSTEEL", "JUBILANT",
	"JUBLFOOD", "JUSTDIAL", "JYOTHYLAB", "KSB", "KAJARIACER", "KALPATPOWR", "KALYANKJIL", "KARURVYSYA", "KEC", "KFINTECH",
	"KPITTECH", "KRBL", "KPRMILL", "KOTAKBANK", "LTTS", "LTIM", "LT", "LAXMIMACH", "LAURUSLABS", "LICI",
	"LICHSGFIN", "LUPIN", "LUXIND", "MM", "MMFIN", "MANAPPURAM", "MRPL", "MARICO", "MARUTI", "MASTEK",
	"MAXHEALTH", "MFSL", "METROBRAND", "METROPOLIS", "MOTILALOFS", "MPHASSIS", "MRF", "NBCC", "NCC", "NESCO",
	"NHPC", "NLCINDIA", "NMDC", "NOCIL", "NTPC", "NATIONALUM", "NAVINFLUOR", "NESTLEIND", "NETWORK18", "NAM-INDIA",
	"OBEROIRLTY", "ONGC", "OIL", "OFSS", "PAGEIND", "PATANJALI", "PERSISTENT", "PETRONET", "PFC", "PFIZER",
	"PHOENIXLTD", "PIDILITIND", "PIIND", "PNB", "POLYMED", "POLYCAB", "POONAWALLA", "POWERGRID", "PRESTIGE", "PRSMJOHNSN",
	"PSB", "PVRINOX", "RADICO", "RVNL", "RAILTEL", "RBLBANK", "RECLTD", "REDINGTON", "RELAXO", "RELIANCE",
	"RHIM", "RITES", "SAIL", "SANOFI", "SBICARD", "SBILIFE", "SBIN", "SCHAEFFLER", "SEQUENT", "SFL",
	"SHREECEM", "SHRIRAMFIN", "SIEMENS", "SJVN", "SKFINDIA", "SOBHA", "SOLARINDS", "SONACOMS", "SONATSOFTW", "STARHEALTH",
	"SUNDARMFIN", "SUNDRMFAST", "SUNPHARMA", "SUNTV", "SUPRAJIT", "SUPREMEIND", "SUZLON", "SWANENERGY", "SYMPHONY", "SYNGENE",
	"TANLA", "TATACHEM", "TATACOMM", "TATACONSUM", "TATAELXSI", "TATAINVEST", "TATAMOTORS", "TATAPOWER", "TATASTEEL", "TCS",
	"TTML", "TEAMLEASE", "TECHM", "NIACL", "RAMCOCEM", "THERMAX", "TIMKEN", "TITAN", "TORNTPHARM", "TORNTPOWER",
	"TRENT", "TRIDENT", "TRIVENI", "TIINDIA", "TV18BRDCST", "TVSMOTOR", "UCOBANK", "UFLEX", "ULTRACEMCO", "UNIONBANK",
	"UBL", "UPL", "VAIBHAVGBL", "VGUARD", "VARROC", "VEDL", "VENKEYS", "VIJAYA", "VOLTAS", "WELCORP",
	"WELSPUNIND", "WHIRLPOOL", "WIPRO", "WOCKPHARMA", "YESBANK", "ZEEL", "ZENSARTECH", "ZOMATO", "ZYDUSLIFE",
}

// ToUpstream returns the provider ticker for a caller symbol: trimmed,
// upper-cased, suffixed once.
func ToUpstream(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, ExchangeSuffix) {
		return s
	}
	return s + ExchangeSuffix
}

// FromUpstream strips the exchange suffix from a provider ticker.
func FromUpstream(symbol string) string {
	return strings.TrimSuffix(symbol, ExchangeSuffix)
}

// UpstreamList converts a set of caller symbols to provider tickers,
// dropping blanks and duplicates while keeping order.
func UpstreamList(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if strings.TrimSpace(s) == "" {
			continue
		}
		u := ToUpstream(s)
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
