// Package level maps total scores to the six named tiers shared by the
// learner profile and the ranking board.
package level

// Level is one of the six ordered tiers.
type Level int

const (
	Sprout Level = iota // 数学萌新
	Novice              // 数学新手
	Cadet               // 数学小将
	Adept               // 数学高手
	Expert              // 数学专家
	Master              // 数学大师
)

// thresholds lists the inclusive lower score bound for each tier above Sprout.
var thresholds = []struct {
	min   int
	level Level
}{
	{1000, Master},
	{800, Expert},
	{600, Adept},
	{400, Cadet},
	{200, Novice},
}

var labels = map[Level]string{
	Sprout: "数学萌新",
	Novice: "数学新手",
	Cadet:  "数学小将",
	Adept:  "数学高手",
	Expert: "数学专家",
	Master: "数学大师",
}

// ForScore returns the tier whose inclusive lower bound is the highest one
// not exceeding score.
func ForScore(score int) Level {
	for _, t := range thresholds {
		if score >= t.min {
			return t.level
		}
	}
	return Sprout
}

// LabelForScore is shorthand for ForScore(score).Label().
func LabelForScore(score int) string {
	return ForScore(score).Label()
}

// Label returns the display name of the tier.
func (l Level) Label() string {
	return labels[l]
}

func (l Level) String() string {
	return l.Label()
}
