package game

// Action represents a player action during their turn
type Action int

const (
	Hit Action = iota
	Stand
	Double
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Contains reports whether the action set includes a.
func Contains(actions []Action, a Action) bool {
	for _, legal := range actions {
		if legal == a {
			return true
		}
	}
	return false
}
