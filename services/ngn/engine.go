// Package ngn runs NGN case progressions: parsing a generated case, walking
// its stages and scoring each submission.
package ngn

import (
	"errors"
	"slices"

	"nursethink/models"

	"github.com/samber/lo"
)

type State string

const (
	StateAwaitingCase   State = "awaiting_case"
	StateStageActive    State = "stage_active"
	StateStageSubmitted State = "stage_submitted"
	StateComplete       State = "complete"
)

var (
	ErrNoCase            = errors.New("no NGN case loaded")
	ErrStageSubmitted    = errors.New("stage already submitted; continue to the next stage")
	ErrStageNotSubmitted = errors.New("submit the current stage before continuing")
	ErrCaseComplete      = errors.New("case is complete")
)

// IsTransitionError reports whether err is an illegal state transition.
func IsTransitionError(err error) bool {
	return errors.Is(err, ErrNoCase) ||
		errors.Is(err, ErrStageSubmitted) ||
		errors.Is(err, ErrStageNotSubmitted) ||
		errors.Is(err, ErrCaseComplete)
}

// Engine holds one session's case progression. It is not safe for
// concurrent use; the owning session serializes access.
type Engine struct {
	current  *models.Case
	stage    int
	state    State
	history  []models.AttemptRecord
	feedback *models.StageFeedback
}

func NewEngine() *Engine {
	return &Engine{state: StateAwaitingCase}
}

// Load installs c and restarts at the first stage with an empty history.
func (e *Engine) Load(c *models.Case) {
	e.current = c
	e.stage = 0
	e.history = nil
	e.feedback = nil
	e.state = StateStageActive
	if len(c.Stages) == 0 {
		e.state = StateComplete
	}
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Case() *models.Case {
	return e.current
}

func (e *Engine) StageIndex() int {
	return e.stage
}

// CurrentStage returns the stage being played, including after submission.
func (e *Engine) CurrentStage() (*models.Stage, error) {
	switch e.state {
	case StateAwaitingCase:
		return nil, ErrNoCase
	case StateComplete:
		return nil, ErrCaseComplete
	}
	return &e.current.Stages[e.stage], nil
}

func (e *Engine) Submit(answer models.StageAnswer) (*models.StageFeedback, error) {
	switch e.state {
	case StateAwaitingCase:
		return nil, ErrNoCase
	case StateStageSubmitted:
		return nil, ErrStageSubmitted
	case StateComplete:
		return nil, ErrCaseComplete
	}

	stage := e.current.Stages[e.stage]
	record := models.AttemptRecord{
		StageNumber:      StageNumber(stage, e.stage),
		Score:            ScoreStage(stage.Best, answer),
		ChosenKeyCues:    lo.Uniq(answer.KeyCues),
		ChosenHypothesis: answer.Hypothesis,
		ChosenAction:     answer.Action,
		ChosenOutcome:    answer.Outcome,
	}
	e.history = append(e.history, record)

	e.feedback = &models.StageFeedback{
		Attempt:    record,
		MaxScore:   MaxStageScore,
		Best:       stage.Best,
		Rationale:  stage.Rationale,
		NextUpdate: stage.NextUpdate,
	}
	e.state = StateStageSubmitted
	return e.feedback, nil
}

// Feedback is the result of the latest submission on the current stage.
func (e *Engine) Feedback() *models.StageFeedback {
	if e.state != StateStageSubmitted {
		return nil
	}
	return e.feedback
}

func (e *Engine) Advance() error {
	switch e.state {
	case StateAwaitingCase:
		return ErrNoCase
	case StateStageActive:
		return ErrStageNotSubmitted
	case StateComplete:
		return ErrCaseComplete
	}

	e.feedback = nil
	e.stage++
	if e.stage >= len(e.current.Stages) {
		e.state = StateComplete
		return nil
	}
	e.state = StateStageActive
	return nil
}

// History returns a copy of the attempts recorded for the current case.
func (e *Engine) History() []models.AttemptRecord {
	return slices.Clone(e.history)
}

func (e *Engine) Summary() models.CaseSummary {
	return models.CaseSummary{
		PerfectStages: lo.CountBy(e.history, func(r models.AttemptRecord) bool {
			return r.Score == MaxStageScore
		}),
		TotalAttempts: len(e.history),
	}
}
