package types

import (
	"fmt"
	"strconv"
	"strings"
)

// scoreBits is the bit size a textual score must fit in.
const scoreBits = 32

// ParseScores converts textual scores into a score list, preserving order.
// Each argument may hold several comma separated values; blanks are skipped.
func ParseScores(args []string) ([]uint32, error) {
	scores := make([]uint32, 0, len(args))
	for _, arg := range args {
		for _, tok := range strings.Split(arg, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(tok, 10, scoreBits)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidScore, tok, err)
			}
			scores = append(scores, uint32(v))
		}
	}
	return scores, nil
}
