package stats

import "fmt"

// Outcomes tallies one side's results over many games. A win scores 1, a
// draw 0.5 and a loss 0.
type Outcomes struct {
	Wins   int
	Losses int
	Draws  int
	score  Statistic
}

func (o *Outcomes) AddWin() {
	o.Wins++
	o.score.Push(1)
}

func (o *Outcomes) AddLoss() {
	o.Losses++
	o.score.Push(0)
}

func (o *Outcomes) AddDraw() {
	o.Draws++
	o.score.Push(0.5)
}

func (o *Outcomes) Games() int {
	return o.Wins + o.Losses + o.Draws
}

// Score is the per-game score statistic; its mean is the score rate.
func (o *Outcomes) Score() *Statistic {
	return &o.score
}

func (o *Outcomes) String() string {
	lo, hi := o.score.ConfidenceInterval(95)
	return fmt.Sprintf("%d-%d-%d (score %.3f, 95%% CI %.3f to %.3f)",
		o.Wins, o.Losses, o.Draws, o.score.Mean(), lo, hi)
}
