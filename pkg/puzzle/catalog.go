package puzzle

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// DefaultPuzzleID is the first unsolved puzzle in the catalog.
const DefaultPuzzleID = 71

// Puzzle is one entry of the Bitcoin puzzle transaction: a funded address
// whose key is known to lie in [RangeStart, RangeEnd].
type Puzzle struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	RangeStart string  `json:"range_start"` // hex, no padding
	RangeEnd   string  `json:"range_end"`   // hex, no padding
	Reward     float64 `json:"reward"`      // BTC
	Bits       int     `json:"bits"`
	Solved     bool    `json:"solved"`
	SolvedDate string  `json:"solved_date,omitempty"`
}

var catalog = []Puzzle{
	{ID: 66, Address: "13zb1hQbWVsc2S7ZTZnP2G4undNNpdh5so", RangeStart: "20000000000000000", RangeEnd: "3ffffffffffffffff", Bits: 66, Solved: true, SolvedDate: "2024-09-12"},
	{ID: 67, Address: "1BY8GQbnueYofwSuFAT3USAhGjPrkxDdW9", RangeStart: "40000000000000000", RangeEnd: "7ffffffffffffffff", Bits: 67, Solved: true, SolvedDate: "2025-02-21"},
	{ID: 68, Address: "1MVDYgVaSN6iKKEsbzRUAYFrYJadLYZvvZ", RangeStart: "80000000000000000", RangeEnd: "fffffffffffffffff", Bits: 68, Solved: true, SolvedDate: "2025-04-06"},
	{ID: 69, Address: "19vkiEajfhuZ8bs8Zu2jgmC6oqZbWqhxhG", RangeStart: "100000000000000000", RangeEnd: "1fffffffffffffffff", Bits: 69, Solved: true, SolvedDate: "2025-04-30"},
	{ID: 70, Address: "19YZECXj3SxEZMoUeJ1yiPsw8xANe7M7QR", RangeStart: "200000000000000000", RangeEnd: "3fffffffffffffffff", Bits: 70, Solved: true, SolvedDate: "pre-2023"},
	{ID: 71, Address: "1PWo3JeB9jrGwfHDNpdGK54CRas7fsVzXU", RangeStart: "400000000000000000", RangeEnd: "7fffffffffffffffff", Reward: 7.10, Bits: 71},
	{ID: 72, Address: "1JTK7s9YVYywfm5XUH7RNhHJH1LshCaRFR", RangeStart: "800000000000000000", RangeEnd: "ffffffffffffffffff", Reward: 7.20, Bits: 72},
	{ID: 73, Address: "12VVRNPi4SJqUTsp6FmqDqY5sGosDtysn4", RangeStart: "1000000000000000000", RangeEnd: "1ffffffffffffffffff", Reward: 7.30, Bits: 73},
	{ID: 74, Address: "1FWGcVDK3JGzCC3WtkYetULPszMaK2Jksv", RangeStart: "2000000000000000000", RangeEnd: "3ffffffffffffffffff", Reward: 7.40, Bits: 74},
	{ID: 75, Address: "1J36UjUByGroXcCvmj13U6uwaVv9caEeAt", RangeStart: "4000000000000000000", RangeEnd: "7ffffffffffffffffff", Bits: 75, Solved: true, SolvedDate: "pre-2023"},
}

func init() {
	for i := range catalog {
		catalog[i].Name = fmt.Sprintf("Puzzle #%d", catalog[i].ID)
	}
}

// Puzzles returns a copy of the catalog ordered by ID.
func Puzzles() []Puzzle {
	return append([]Puzzle(nil), catalog...)
}

// PuzzleByID looks up a puzzle.
func PuzzleByID(id int) (Puzzle, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}

// UnsolvedPuzzles returns the puzzles that still hold a reward.
func UnsolvedPuzzles() []Puzzle {
	var out []Puzzle
	for _, p := range catalog {
		if !p.Solved {
			out = append(out, p)
		}
	}
	return out
}

// Range returns the puzzle's key range as full-width keys.
func (p Puzzle) Range() (start, end keyspace.Key, err error) {
	if start, err = parseShortHex(p.RangeStart); err != nil {
		return
	}
	end, err = parseShortHex(p.RangeEnd)
	return
}

// RangeSize returns the number of keys in the puzzle range, 2^(bits-1).
func (p Puzzle) RangeSize() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(p.Bits-1))
}

func parseShortHex(s string) (keyspace.Key, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return keyspace.Key{}, fmt.Errorf("%w: %q", ErrMalformedInput, s)
	}
	return keyspace.FromBig(v)
}
