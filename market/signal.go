package market

// Signal is a per-bar trade instruction: +1 buy, -1 sell, 0 hold.
//
// Signals are advisory. The engine acts on Buy only while flat and on Sell
// only while holding; every other combination is a no-op.
type Signal int8

const (
	Buy  Signal = +1
	Sell Signal = -1
	Hold Signal = 0
)

func (s Signal) String() string {
	switch {
	case s > 0:
		return "BUY"
	case s < 0:
		return "SELL"
	default:
		return "HOLD"
	}
}
