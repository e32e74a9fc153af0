package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"civiccents-service/internal/domain"
)

const startingCash = 10000

// TickInterval is how often simulated prices move.
const TickInterval = 5 * time.Second

// Stock is one listed ticker with its simulated price and the percentage
// move of the last tick. Prices are cosmetic; nothing scores off them.
type Stock struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// Position is a holding in the virtual portfolio.
type Position struct {
	Symbol string `json:"symbol"`
	Shares int    `json:"shares"`
}

// Snapshot is a point-in-time view of the whole simulation.
type Snapshot struct {
	Cash       float64    `json:"cash"`
	TotalValue float64    `json:"totalValue"`
	Stocks     []Stock    `json:"stocks"`
	Positions  []Position `json:"positions"`
}

func seedStocks() []Stock {
	return []Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 185.50},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.30},
		{Symbol: "MSFT", Name: "Microsoft", Price: 380.75},
		{Symbol: "TSLA", Name: "Tesla", Price: 242.80},
		{Symbol: "AMZN", Name: "Amazon", Price: 178.20},
		{Symbol: "NVDA", Name: "NVIDIA", Price: 495.60},
		{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Price: 428.90},
		{Symbol: "NDAQ", Name: "NASDAQ Inc.", Price: 68.30},
		{Symbol: "QQQ", Name: "Invesco QQQ Trust", Price: 398.75},
	}
}

// Simulator is the paper-trading playground: virtual cash, a fixed stock
// list, and a background ticker nudging prices. Snapshots are broadcast to
// subscribers the same way quiz leaderboards are.
type Simulator struct {
	rnd *rand.Rand

	mu          sync.RWMutex
	cash        float64
	stocks      []Stock
	positions   map[string]int
	subscribers map[chan Snapshot]struct{}
}

func NewSimulator(rnd *rand.Rand) *Simulator {
	return &Simulator{
		rnd:         rnd,
		cash:        startingCash,
		stocks:      seedStocks(),
		positions:   make(map[string]int),
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Buy purchases shares at the current price.
func (s *Simulator) Buy(symbol string, shares int) error {
	if shares <= 0 {
		return domain.ErrInvalidShares
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stock := s.findLocked(symbol)
	if stock == nil {
		return domain.ErrUnknownSymbol
	}
	cost := stock.Price * float64(shares)
	if cost > s.cash {
		return domain.ErrInsufficientFunds
	}
	s.cash -= cost
	s.positions[symbol] += shares
	s.broadcastLocked()
	return nil
}

// Sell liquidates shares at the current price.
func (s *Simulator) Sell(symbol string, shares int) error {
	if shares <= 0 {
		return domain.ErrInvalidShares
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stock := s.findLocked(symbol)
	if stock == nil {
		return domain.ErrUnknownSymbol
	}
	held := s.positions[symbol]
	if shares > held {
		return domain.ErrInsufficientShares
	}
	s.cash += stock.Price * float64(shares)
	if held == shares {
		delete(s.positions, symbol)
	} else {
		s.positions[symbol] = held - shares
	}
	s.broadcastLocked()
	return nil
}

// Reset restores the initial cash and clears all positions. Prices keep
// drifting; the reset is about the portfolio, not the market.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cash = startingCash
	s.positions = make(map[string]int)
	s.broadcastLocked()
}

// Snapshot returns the current state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of snapshots pushed on every mutation and
// price tick. The cancel function must be called to avoid leaks.
func (s *Simulator) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// TickPrices applies one random move of up to ±2.5% to every stock, with a
// one-cent floor.
func (s *Simulator) TickPrices() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stocks {
		changePercent := (s.rnd.Float64() - 0.5) * 5
		price := s.stocks[i].Price * (1 + changePercent/100)
		if price < 0.01 {
			price = 0.01
		}
		s.stocks[i].Price = price
		s.stocks[i].Change = changePercent
	}
	s.broadcastLocked()
}

// Run drives the price ticker until the context is canceled.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.TickPrices()
		}
	}
}

func (s *Simulator) findLocked(symbol string) *Stock {
	for i := range s.stocks {
		if s.stocks[i].Symbol == symbol {
			return &s.stocks[i]
		}
	}
	return nil
}

func (s *Simulator) snapshotLocked() Snapshot {
	total := s.cash
	positions := make([]Position, 0, len(s.positions))
	for _, stock := range s.stocks {
		if shares, ok := s.positions[stock.Symbol]; ok && shares > 0 {
			positions = append(positions, Position{Symbol: stock.Symbol, Shares: shares})
			total += stock.Price * float64(shares)
		}
	}
	stocks := make([]Stock, len(s.stocks))
	copy(stocks, s.stocks)
	return Snapshot{
		Cash:       s.cash,
		TotalValue: total,
		Stocks:     stocks,
		Positions:  positions,
	}
}

func (s *Simulator) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow reader never blocks the tick.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
