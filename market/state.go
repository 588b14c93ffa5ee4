package market

// IntersectionState tracks the crossover state machine's per-symbol
// progress through pre/first/second (§4.3 of the crossover design).
type IntersectionState struct {
	PrePointFound bool
	FirstFound    bool
	SecondFound   bool

	SecondCalT string

	HighestBetweenFirstAndSecond float64
	HasHighestBetween            bool

	FirstIndex  int
	SecondIndex int
}

// BuyCommand records the strategy's intent to buy a symbol once the buy
// trigger condition is satisfied.
type BuyCommand struct {
	Symbol         string
	BuyAt          float64
	CreatedTs      int64
	Requested      bool
	RequestedPrice float64
	HasPrice       bool
}

// SellingMode identifies which exit policy armed the current sell watch.
type SellingMode string

const (
	SellingModeNone     SellingMode = ""
	SellingModeNormal   SellingMode = "normal"
	SellingModeForced   SellingMode = "forced"
	SellingModeBlind    SellingMode = "blind"
	SellingModeDecrease SellingMode = "decrease"
)

// OrderRef is the broker's handle on a submitted order, along with the
// fill status the engine needs to reason about sell eligibility.
type OrderRef struct {
	ID           string
	Status       string
	RequestedQty float64
	FilledQty    float64
}

// Filled reports whether the order ref represents a fully filled order.
func (o OrderRef) Filled() bool {
	return o.FilledQty >= o.RequestedQty && o.RequestedQty > 0
}

// SymbolSlot is the per-symbol mutable state the engine carries for the
// lifetime of a subscription.
type SymbolSlot struct {
	Symbol       string
	Bars         []EnrichedMinuteBar
	Intersection IntersectionState

	BuyCommand *BuyCommand

	LastBuyOrderRef *OrderRef
	CancelAttempted bool

	PlaceBuyAtMs *int64

	TryingSellTs  *int64
	SellAtPrice   *float64
	SellingMode   SellingMode
	DecreaseArmed bool
}

// LastBar returns the most recently appended enriched minute bar, or the
// zero value and false if the slot has no bars yet.
func (s *SymbolSlot) LastBar() (EnrichedMinuteBar, bool) {
	if len(s.Bars) == 0 {
		return EnrichedMinuteBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// EngineState is the process-wide state shared across all symbols: which
// symbol (if any) currently holds a live position, the ban list, and the
// per-symbol loss counters (incremented and deleted on each loss; the ban
// decision does not read them).
type EngineState struct {
	Slots               map[string]*SymbolSlot
	CurrentBoughtSymbol string
	Trading             bool

	BannedSymbols map[string]int64 // symbol -> unban epoch ms
	LostCount     map[string]int
}

// NewEngineState returns an EngineState with all maps initialized.
func NewEngineState() *EngineState {
	return &EngineState{
		Slots:         make(map[string]*SymbolSlot),
		BannedSymbols: make(map[string]int64),
		LostCount:     make(map[string]int),
	}
}

// IsBanned reports whether the symbol is currently banned as of nowMs.
func (e *EngineState) IsBanned(symbol string, nowMs int64) bool {
	unban, ok := e.BannedSymbols[symbol]
	if !ok {
		return false
	}
	return unban > nowMs
}
