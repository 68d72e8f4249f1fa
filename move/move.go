// Package move holds the coordinate pair that the engine recommends and the
// turn controller commits.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxLetterCoordDim is the largest board dimension that can still be written
// with a single column letter (A-Z).
const MaxLetterCoordDim = 26

var (
	// Invalid is returned when no legal move is available (full board).
	Invalid = Move{X: -1, Y: -1}

	ErrBadCoords = errors.New("could not parse coordinates")
)

var reLetterCoords, reNumericCoords *regexp.Regexp

func init() {
	reLetterCoords = regexp.MustCompile(`^(?P<col>[A-Za-z])(?P<row>[0-9]+)$`)
	reNumericCoords = regexp.MustCompile(`^\(?\s*(?P<x>-?[0-9]+)\s*,\s*(?P<y>-?[0-9]+)\s*\)?$`)
}

// Move is a single stone placement. It carries no colour; the player is
// always known from context.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New creates a move at (x, y).
func New(x, y int) Move {
	return Move{X: x, Y: y}
}

// IsValid is false only for the Invalid sentinel (or any negative
// coordinate).
func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0
}

// InBounds returns whether the move fits on a dim×dim board.
func (m Move) InBounds(dim int) bool {
	return m.IsValid() && m.X < dim && m.Y < dim
}

func (m Move) Equals(o Move) bool {
	return m.X == o.X && m.Y == o.Y
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	if !m.IsValid() {
		return "(none)"
	}
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

// ShortDescription gives the board-game style coordinates, column letter
// followed by 1-based row (H8 is the center of a 15x15 board). Boards wider
// than MaxLetterCoordDim fall back to numeric form.
func (m Move) ShortDescription(dim int) string {
	if !m.IsValid() {
		return "(none)"
	}
	if dim > MaxLetterCoordDim {
		return m.String()
	}
	return ToBoardGameCoords(m.X, m.Y)
}

// ToBoardGameCoords converts a column and row index to e.g. "H8".
func ToBoardGameCoords(x, y int) string {
	return string(rune('A'+x)) + strconv.Itoa(y+1)
}

// FromString parses either board-game coordinates ("H8", "h8") or a numeric
// pair ("7,7" or "(7,7)"). It does not check bounds; that is the board's
// job.
func FromString(coords string) (Move, error) {
	coords = strings.TrimSpace(coords)
	if match := reLetterCoords.FindStringSubmatch(coords); match != nil {
		col := strings.ToUpper(match[1])[0]
		row, err := strconv.Atoi(match[2])
		if err != nil || row < 1 {
			return Invalid, fmt.Errorf("%w: %q", ErrBadCoords, coords)
		}
		return Move{X: int(col - 'A'), Y: row - 1}, nil
	}
	if match := reNumericCoords.FindStringSubmatch(coords); match != nil {
		x, errx := strconv.Atoi(match[1])
		y, erry := strconv.Atoi(match[2])
		if errx != nil || erry != nil {
			return Invalid, fmt.Errorf("%w: %q", ErrBadCoords, coords)
		}
		return Move{X: x, Y: y}, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrBadCoords, coords)
}
