package models

// Position is the caller's holding in one instrument. Both fields are non-negative.
type Position struct {
	Quantity    float64 `json:"qty"`
	AverageCost float64 `json:"avg_price"`
}

// ZeroPosition is the flat position.
var ZeroPosition = Position{}

// IsFlat reports whether nothing is held.
func (p Position) IsFlat() bool { return p.Quantity <= 0 }
