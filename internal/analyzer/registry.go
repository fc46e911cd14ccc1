package analyzer

import "fmt"

// NewDetector creates a detector based on the specified variant.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "jump", "":
		return NewJumpDetector(), nil
	case "turn":
		return NewTurnDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
