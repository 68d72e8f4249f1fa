package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/gomoku/stats"
)

const histogramBins = 10

// Summary aggregates a set of game results.
type Summary struct {
	Games int
	P1    stats.Outcomes
	P2    stats.Outcomes
	// results for whichever side moved first.
	FirstMover           stats.Outcomes
	Length               stats.Statistic
	UniqueFinalPositions int

	lengths []float64
}

// Summarize tallies results.
func Summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results)}
	for _, r := range results {
		switch r.Winner {
		case P1:
			s.P1.AddWin()
			s.P2.AddLoss()
		case P2:
			s.P1.AddLoss()
			s.P2.AddWin()
		default:
			s.P1.AddDraw()
			s.P2.AddDraw()
		}
		switch r.Winner {
		case DrawLabel:
			s.FirstMover.AddDraw()
		case r.Black:
			s.FirstMover.AddWin()
		default:
			s.FirstMover.AddLoss()
		}
		s.Length.Push(float64(r.Moves))
	}
	s.lengths = lo.Map(results, func(r GameResult, _ int) float64 {
		return float64(r.Moves)
	})
	s.UniqueFinalPositions = len(lo.Uniq(lo.Map(results, func(r GameResult, _ int) uint64 {
		return r.Fingerprint
	})))
	return s
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "%s: %v\n", P1, &s.P1)
	fmt.Fprintf(&sb, "%s: %v\n", P2, &s.P2)
	fmt.Fprintf(&sb, "First mover: %v\n", &s.FirstMover)
	fmt.Fprintf(&sb, "Game length: mean %.2f  stdev %.2f  min %.0f  max %.0f\n",
		s.Length.Mean(), s.Length.Stdev(), s.Length.Min(), s.Length.Max())
	fmt.Fprintf(&sb, "Distinct final positions: %d\n", s.UniqueFinalPositions)
	if len(s.lengths) > 1 && s.Length.Min() != s.Length.Max() {
		sb.WriteString("Game length histogram:\n")
		hist := histogram.Hist(histogramBins, s.lengths)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			fmt.Fprintf(&sb, "(histogram error: %v)\n", err)
		}
	}
	return sb.String()
}

// AnalyzeLogFile reads a CSV log written by CompVsComp and summarizes it.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	var results []GameResult
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == csvHeader[0] {
			continue
		}
		moves, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, err
		}
		fp, err := strconv.ParseUint(record[5], 16, 64)
		if err != nil {
			return nil, err
		}
		results = append(results, GameResult{
			GameID:      record[0],
			Black:       record[1],
			White:       record[2],
			Winner:      record[3],
			Moves:       moves,
			Fingerprint: fp,
		})
	}
	return Summarize(results), nil
}
