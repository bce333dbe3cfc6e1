package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExchange(t *testing.T) {
	assert.Equal(t, ExchangeOKX, ParseExchange("OKX"))
	assert.Equal(t, ExchangeBinance, ParseExchange("BINANCE"))
	assert.Equal(t, ExchangeBybit, ParseExchange("BYBIT"))
	assert.Equal(t, ExchangeUnknown, ParseExchange("okx"))
	assert.Equal(t, ExchangeUnknown, ParseExchange(""))
}

func TestParseInstrumentType(t *testing.T) {
	assert.Equal(t, InstrumentSpot, ParseInstrumentType("SPOT"))
	assert.Equal(t, InstrumentPerpetualSwap, ParseInstrumentType("PERPETUAL_SWAP"))
	assert.Equal(t, InstrumentFutures, ParseInstrumentType("FUTURES"))
	assert.Equal(t, InstrumentOption, ParseInstrumentType("OPTION"))
	assert.Equal(t, InstrumentUnknown, ParseInstrumentType("swap"))
}

func TestOrderBookHelpers(t *testing.T) {
	now := time.Now()
	book := &OrderBook{
		Bids: []OrderBookEntry{
			{Price: 99.5, Volume: 2, Timestamp: now},
			{Price: 99.0, Volume: 5, Timestamp: now},
		},
		Asks: []OrderBookEntry{
			{Price: 100.5, Volume: 1, Timestamp: now},
			{Price: 101.0, Volume: 3, Timestamp: now},
		},
	}

	assert.Equal(t, 99.5, book.BestBid())
	assert.Equal(t, 100.5, book.BestAsk())
	assert.Equal(t, 100.0, book.MidPrice())
	assert.InDelta(t, 1.0, book.Spread(), 1e-9)
}

func TestOrderBookEmpty(t *testing.T) {
	book := &OrderBook{}

	assert.Zero(t, book.BestBid())
	assert.Zero(t, book.BestAsk())
	assert.Zero(t, book.MidPrice())
	assert.Zero(t, book.Spread())
}
