package catalog

import "TickerDesk/internal/model"

type seed struct {
	sym  string
	name string
}

// Builtin dataset used when no catalog file is configured or present yet.
// Spans the major US sectors plus common ETFs and indices.
var (
	builtinEquities = []seed{
		// Technology
		{"AAPL", "Apple Inc."},
		{"GOOGL", "Alphabet Inc. Class A"},
		{"GOOG", "Alphabet Inc. Class C"},
		{"MSFT", "Microsoft Corporation"},
		{"AMZN", "Amazon.com Inc."},
		{"TSLA", "Tesla Inc."},
		{"META", "Meta Platforms Inc."},
		{"NVDA", "NVIDIA Corporation"},
		{"NFLX", "Netflix Inc."},
		{"ADBE", "Adobe Inc."},
		{"CRM", "Salesforce Inc."},
		{"ORCL", "Oracle Corporation"},
		{"CSCO", "Cisco Systems Inc."},
		{"INTC", "Intel Corporation"},
		{"AMD", "Advanced Micro Devices Inc."},
		{"PYPL", "PayPal Holdings Inc."},
		{"UBER", "Uber Technologies Inc."},
		{"SNAP", "Snap Inc."},
		{"SPOT", "Spotify Technology S.A."},
		{"SHOP", "Shopify Inc."},
		{"SQ", "Block Inc."},
		{"COIN", "Coinbase Global Inc."},
		{"PLTR", "Palantir Technologies Inc."},
		{"RBLX", "Roblox Corporation"},
		{"HOOD", "Robinhood Markets Inc."},
		{"SNOW", "Snowflake Inc."},
		{"CRWD", "CrowdStrike Holdings Inc."},
		{"ZS", "Zscaler Inc."},
		{"OKTA", "Okta Inc."},
		{"DDOG", "Datadog Inc."},
		{"NET", "Cloudflare Inc."},
		{"FSLY", "Fastly Inc."},
		{"TEAM", "Atlassian Corporation"},
		{"WDAY", "Workday Inc."},
		{"NOW", "ServiceNow Inc."},
		{"PANW", "Palo Alto Networks Inc."},
		{"FTNT", "Fortinet Inc."},
		{"CYBR", "CyberArk Software Ltd."},
		{"ZM", "Zoom Video Communications Inc."},
		{"DOCU", "DocuSign Inc."},
		{"ROKU", "Roku Inc."},
		{"IBM", "International Business Machines Corporation"},
		{"U", "Unity Software Inc."},
		{"EA", "Electronic Arts Inc."},
		{"TTWO", "Take-Two Interactive Software Inc."},

		// Finance
		{"JPM", "JPMorgan Chase & Co."},
		{"BAC", "Bank of America Corporation"},
		{"WFC", "Wells Fargo & Company"},
		{"GS", "The Goldman Sachs Group Inc."},
		{"MS", "Morgan Stanley"},
		{"C", "Citigroup Inc."},
		{"V", "Visa Inc."},
		{"MA", "Mastercard Incorporated"},
		{"AXP", "American Express Company"},
		{"BRK.A", "Berkshire Hathaway Inc. Class A"},
		{"BRK.B", "Berkshire Hathaway Inc. Class B"},
		{"SCHW", "The Charles Schwab Corporation"},
		{"BLK", "BlackRock Inc."},

		// Healthcare
		{"JNJ", "Johnson & Johnson"},
		{"PFE", "Pfizer Inc."},
		{"UNH", "UnitedHealth Group Incorporated"},
		{"ABBV", "AbbVie Inc."},
		{"MRK", "Merck & Co. Inc."},
		{"BMY", "Bristol Myers Squibb Company"},
		{"LLY", "Eli Lilly and Company"},
		{"AMGN", "Amgen Inc."},
		{"GILD", "Gilead Sciences Inc."},
		{"BIIB", "Biogen Inc."},
		{"MRNA", "Moderna Inc."},
		{"BNTX", "BioNTech SE"},
		{"REGN", "Regeneron Pharmaceuticals Inc."},
		{"VRTX", "Vertex Pharmaceuticals Incorporated"},
		{"ILMN", "Illumina Inc."},
		{"ABT", "Abbott Laboratories"},
		{"TMO", "Thermo Fisher Scientific Inc."},
		{"DHR", "Danaher Corporation"},
		{"ISRG", "Intuitive Surgical Inc."},
		{"CVS", "CVS Health Corporation"},

		// Consumer
		{"WMT", "Walmart Inc."},
		{"HD", "The Home Depot Inc."},
		{"MCD", "McDonald's Corporation"},
		{"KO", "The Coca-Cola Company"},
		{"PEP", "PepsiCo Inc."},
		{"NKE", "NIKE Inc."},
		{"SBUX", "Starbucks Corporation"},
		{"TGT", "Target Corporation"},
		{"LOW", "Lowe's Companies Inc."},
		{"COST", "Costco Wholesale Corporation"},
		{"PG", "The Procter & Gamble Company"},
		{"CL", "Colgate-Palmolive Company"},
		{"KMB", "Kimberly-Clark Corporation"},
		{"MO", "Altria Group Inc."},
		{"PM", "Philip Morris International Inc."},
		{"DIS", "The Walt Disney Company"},
		{"ETSY", "Etsy Inc."},
		{"EBAY", "eBay Inc."},
		{"BABA", "Alibaba Group Holding Limited"},
		{"JD", "JD.com Inc."},
		{"PDD", "PDD Holdings Inc."},
		{"F", "Ford Motor Company"},
		{"GM", "General Motors Company"},
		{"DAL", "Delta Air Lines Inc."},
		{"AAL", "American Airlines Group Inc."},
		{"CCL", "Carnival Corporation & plc"},
		{"LYFT", "Lyft Inc."},
		{"DASH", "DoorDash Inc."},
		{"ABNB", "Airbnb Inc."},

		// Energy
		{"XOM", "Exxon Mobil Corporation"},
		{"CVX", "Chevron Corporation"},
		{"COP", "ConocoPhillips"},
		{"SLB", "Schlumberger Limited"},
		{"EOG", "EOG Resources Inc."},
		{"OXY", "Occidental Petroleum Corporation"},
		{"PSX", "Phillips 66"},

		// Industrial
		{"BA", "The Boeing Company"},
		{"CAT", "Caterpillar Inc."},
		{"GE", "General Electric Company"},
		{"MMM", "3M Company"},
		{"UPS", "United Parcel Service Inc."},
		{"FDX", "FedEx Corporation"},
		{"HON", "Honeywell International Inc."},
		{"UNP", "Union Pacific Corporation"},
		{"DE", "Deere & Company"},
		{"LMT", "Lockheed Martin Corporation"},
		{"RTX", "RTX Corporation"},
		{"NOC", "Northrop Grumman Corporation"},

		// Telecom & media
		{"VZ", "Verizon Communications Inc."},
		{"T", "AT&T Inc."},
		{"CMCSA", "Comcast Corporation"},
		{"TMUS", "T-Mobile US Inc."},
		{"CHTR", "Charter Communications Inc."},

		// Real estate
		{"AMT", "American Tower Corporation"},
		{"PLD", "Prologis Inc."},
		{"CCI", "Crown Castle Inc."},
		{"EQIX", "Equinix Inc."},
		{"PSA", "Public Storage"},

		// Utilities
		{"NEE", "NextEra Energy Inc."},
		{"SO", "The Southern Company"},
		{"DUK", "Duke Energy Corporation"},
		{"AEP", "American Electric Power Company Inc."},
		{"D", "Dominion Energy Inc."},

		// Materials
		{"FCX", "Freeport-McMoRan Inc."},
		{"NUE", "Nucor Corporation"},
		{"LIN", "Linde plc"},
		{"APD", "Air Products and Chemicals Inc."},
		{"DOW", "Dow Inc."},

		// Semiconductors
		{"TSM", "Taiwan Semiconductor Manufacturing Company Limited"},
		{"ASML", "ASML Holding N.V."},
		{"QCOM", "QUALCOMM Incorporated"},
		{"AVGO", "Broadcom Inc."},
		{"TXN", "Texas Instruments Incorporated"},
		{"MU", "Micron Technology Inc."},
		{"LRCX", "Lam Research Corporation"},
		{"AMAT", "Applied Materials Inc."},
		{"KLAC", "KLA Corporation"},
		{"ADI", "Analog Devices Inc."},
		{"MRVL", "Marvell Technology Inc."},
		{"ON", "ON Semiconductor Corporation"},

		// Crypto-adjacent
		{"MSTR", "MicroStrategy Incorporated"},
		{"RIOT", "Riot Platforms Inc."},
		{"MARA", "Marathon Digital Holdings Inc."},

		// EV makers
		{"NIO", "NIO Inc."},
		{"XPEV", "XPeng Inc."},
		{"LI", "Li Auto Inc."},
		{"RIVN", "Rivian Automotive Inc."},
		{"LCID", "Lucid Group Inc."},
	}

	builtinETFs = []seed{
		{"SPY", "SPDR S&P 500 ETF Trust"},
		{"QQQ", "Invesco QQQ Trust"},
		{"VTI", "Vanguard Total Stock Market ETF"},
		{"VOO", "Vanguard S&P 500 ETF"},
		{"IWM", "iShares Russell 2000 ETF"},
		{"DIA", "SPDR Dow Jones Industrial Average ETF Trust"},
		{"EFA", "iShares MSCI EAFE ETF"},
		{"EEM", "iShares MSCI Emerging Markets ETF"},
		{"VXUS", "Vanguard Total International Stock ETF"},
		{"VEA", "Vanguard FTSE Developed Markets ETF"},
		{"VWO", "Vanguard FTSE Emerging Markets ETF"},
		{"BND", "Vanguard Total Bond Market ETF"},
		{"AGG", "iShares Core U.S. Aggregate Bond ETF"},
		{"TLT", "iShares 20+ Year Treasury Bond ETF"},
		{"IEF", "iShares 7-10 Year Treasury Bond ETF"},
		{"LQD", "iShares iBoxx $ Investment Grade Corporate Bond ETF"},
		{"HYG", "iShares iBoxx $ High Yield Corporate Bond ETF"},
		{"VNQ", "Vanguard Real Estate ETF"},
		{"GLD", "SPDR Gold Shares"},
		{"SLV", "iShares Silver Trust"},
		{"USO", "United States Oil Fund"},
		{"ARKK", "ARK Innovation ETF"},
		{"SCHD", "Schwab U.S. Dividend Equity ETF"},
		{"VIG", "Vanguard Dividend Appreciation ETF"},
		{"VYM", "Vanguard High Dividend Yield ETF"},
		{"XLF", "Financial Select Sector SPDR Fund"},
		{"XLK", "Technology Select Sector SPDR Fund"},
		{"XLE", "Energy Select Sector SPDR Fund"},
		{"XLV", "Health Care Select Sector SPDR Fund"},
		{"XLI", "Industrial Select Sector SPDR Fund"},
		{"XLY", "Consumer Discretionary Select Sector SPDR Fund"},
		{"XLP", "Consumer Staples Select Sector SPDR Fund"},
		{"XLU", "Utilities Select Sector SPDR Fund"},
		{"XLB", "Materials Select Sector SPDR Fund"},
	}

	builtinIndices = []seed{
		{"^GSPC", "S&P 500"},
		{"^DJI", "Dow Jones Industrial Average"},
		{"^IXIC", "NASDAQ Composite"},
		{"^RUT", "Russell 2000"},
		{"^VIX", "CBOE Volatility Index"},
		{"^FTSE", "FTSE 100"},
		{"^N225", "Nikkei 225"},
	}
)

// Builtin returns the builtin instrument dataset.
func Builtin() []model.Instrument {
	out := make([]model.Instrument, 0, len(builtinEquities)+len(builtinETFs)+len(builtinIndices))
	for _, s := range builtinEquities {
		out = append(out, model.Instrument{Symbol: s.sym, Name: s.name, Category: model.CategoryEquity})
	}
	for _, s := range builtinETFs {
		out = append(out, model.Instrument{Symbol: s.sym, Name: s.name, Category: model.CategoryETF})
	}
	for _, s := range builtinIndices {
		out = append(out, model.Instrument{Symbol: s.sym, Name: s.name, Category: model.CategoryIndex})
	}
	return out
}
