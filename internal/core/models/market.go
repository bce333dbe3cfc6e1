package models

import "time"

type Exchange string
type InstrumentType string
type OrderSide string
type ArbitrageType string

const (
	ExchangeOKX     Exchange = "OKX"
	ExchangeBinance Exchange = "BINANCE"
	ExchangeBybit   Exchange = "BYBIT"
	ExchangeUnknown Exchange = "UNKNOWN"
)

const (
	InstrumentSpot          InstrumentType = "SPOT"
	InstrumentPerpetualSwap InstrumentType = "PERPETUAL_SWAP"
	InstrumentFutures       InstrumentType = "FUTURES"
	InstrumentOption        InstrumentType = "OPTION"
	InstrumentUnknown       InstrumentType = "UNKNOWN"
)

const (
	OrderSideBuy     OrderSide = "BUY"
	OrderSideSell    OrderSide = "SELL"
	OrderSideUnknown OrderSide = "UNKNOWN"
)

const (
	ArbitrageRealVsSyntheticSpot       ArbitrageType = "REAL_VS_SYNTHETIC_SPOT"
	ArbitrageRealVsSyntheticDerivative ArbitrageType = "REAL_VS_SYNTHETIC_DERIVATIVE"
	ArbitrageCrossSynthetic            ArbitrageType = "CROSS_SYNTHETIC"
	ArbitrageFundingRate               ArbitrageType = "FUNDING_RATE_ARBITRAGE"
	ArbitrageBasisSpread               ArbitrageType = "BASIS_SPREAD_ARBITRAGE"
	ArbitrageUnknown                   ArbitrageType = "UNKNOWN"
)

// ParseExchange maps a config string to an Exchange, falling back to UNKNOWN.
func ParseExchange(s string) Exchange {
	switch Exchange(s) {
	case ExchangeOKX, ExchangeBinance, ExchangeBybit:
		return Exchange(s)
	default:
		return ExchangeUnknown
	}
}

// ParseInstrumentType maps a config string to an InstrumentType, falling back
// to UNKNOWN.
func ParseInstrumentType(s string) InstrumentType {
	switch InstrumentType(s) {
	case InstrumentSpot, InstrumentPerpetualSwap, InstrumentFutures, InstrumentOption:
		return InstrumentType(s)
	default:
		return InstrumentUnknown
	}
}

type Instrument struct {
	ID           string         `json:"id"`
	Symbol       string         `json:"symbol"`
	BaseAsset    string         `json:"base_asset"`
	QuoteAsset   string         `json:"quote_asset"`
	Type         InstrumentType `json:"type"`
	Exchange     Exchange       `json:"exchange"`
	TickSize     float64        `json:"tick_size"`
	MinNotional  float64        `json:"min_notional"`
	ContractSize float64        `json:"contract_size"`
	ExpiryTime   *time.Time     `json:"expiry_time,omitempty"`
	IsActive     bool           `json:"is_active"`
}

type OrderBookEntry struct {
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderBook struct {
	Bids         []OrderBookEntry `json:"bids"`
	Asks         []OrderBookEntry `json:"asks"`
	Timestamp    time.Time        `json:"timestamp"`
	InstrumentID string           `json:"instrument_id"`
	ExchangeID   string           `json:"exchange_id"`
}

// BestBid returns the top-of-book bid price, or 0 when the book is empty.
func (ob *OrderBook) BestBid() float64 {
	if len(ob.Bids) == 0 {
		return 0
	}
	return ob.Bids[0].Price
}

// BestAsk returns the top-of-book ask price, or 0 when the book is empty.
func (ob *OrderBook) BestAsk() float64 {
	if len(ob.Asks) == 0 {
		return 0
	}
	return ob.Asks[0].Price
}

// MidPrice returns the midpoint between the best bid and best ask.
func (ob *OrderBook) MidPrice() float64 {
	return (ob.BestBid() + ob.BestAsk()) / 2
}

// Spread returns the best ask minus the best bid.
func (ob *OrderBook) Spread() float64 {
	return ob.BestAsk() - ob.BestBid()
}

type ArbitrageOpportunity struct {
	ID                       string        `json:"id"`
	Type                     ArbitrageType `json:"type"`
	LegInstruments           []string      `json:"leg_instruments"`
	LegExchanges             []Exchange    `json:"leg_exchanges"`
	LegSides                 []OrderSide   `json:"leg_sides"`
	LegPrices                []float64     `json:"leg_prices"`
	LegVolumes               []float64     `json:"leg_volumes"`
	ExpectedProfit           float64       `json:"expected_profit"`
	ExpectedProfitPercentage float64       `json:"expected_profit_percentage"`
	RiskScore                float64       `json:"risk_score"`
	ConfidenceScore          float64       `json:"confidence_score"`
	DetectionTime            time.Time     `json:"detection_time"`
	ExpiryTime               time.Time     `json:"expiry_time"`
	IsActive                 bool          `json:"is_active"`
}
