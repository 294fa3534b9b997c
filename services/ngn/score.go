package ngn

import (
	"nursethink/models"

	"github.com/samber/lo"
)

const MaxStageScore = 4

// KeyCuePoint awards the key-cue point when the chosen cues cover at least
// max(1, |best|/2) of the best cues. An empty best set never scores.
func KeyCuePoint(best, chosen []string) int {
	bestSet := lo.Uniq(best)
	if len(bestSet) == 0 {
		return 0
	}
	overlap := lo.Intersect(bestSet, lo.Uniq(chosen))
	if len(overlap) >= max(1, len(bestSet)/2) {
		return 1
	}
	return 0
}

func ScoreStage(best models.StageBest, answer models.StageAnswer) int {
	score := KeyCuePoint(best.KeyCues, answer.KeyCues)
	for _, pair := range [][2]string{
		{best.Hypothesis, answer.Hypothesis},
		{best.Action, answer.Action},
		{best.Outcome, answer.Outcome},
	} {
		if exactMatch(pair[0], pair[1]) {
			score++
		}
	}
	return score
}

// exactMatch is case-sensitive. A best answer the model left out matches nothing.
func exactMatch(best, chosen string) bool {
	return best != "" && best == chosen
}
