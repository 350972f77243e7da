package trio

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseMoves decodes a YAML list of raw moves, such as
//
//	- {action: attack, target: p2, value: 12}
//	- {action: defend, target: any, value: 0}
//
// and validates each one. Errors name the 1-based position of the bad move.
func ParseMoves(data []byte) ([]Move, error) {
	var raw []map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	moves := make([]Move, 0, len(raw))
	for i, fields := range raw {
		m, err := ParseMove(fields)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}
