package entity

// Player is one side of a match, identified only by its marker.
type Player struct {
	Symbol Marker `json:"symbol"`
}

// NewPlayer - creates the player holding symbol.
func NewPlayer(symbol Marker) Player {
	return Player{Symbol: symbol}
}

// Opponent - returns the player holding the other marker.
func (that Player) Opponent() Player {
	return Player{Symbol: that.Symbol.Opponent()}
}
