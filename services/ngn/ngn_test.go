package ngn

import (
	"encoding/json"
	"testing"

	"nursethink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStage(n int) models.Stage {
	return models.Stage{
		StageNumber: n,
		Cues:        []string{"T 39.1 C", "HR 124", "BP 84/50"},
		Question:    "What matters most right now?",
		Options: models.StageOptions{
			KeyCues:    []string{"fever", "tachycardia", "hypotension", "pain 3/10"},
			Hypotheses: []string{"Sepsis", "Dehydration"},
			Actions:    []string{"Notify provider and start sepsis protocol", "Reassess in 4 hours"},
			Outcomes:   []string{"MAP >= 65", "Pain 0/10"},
		},
		Best: models.StageBest{
			KeyCues:    []string{"fever", "tachycardia", "hypotension"},
			Hypothesis: "Sepsis",
			Action:     "Notify provider and start sepsis protocol",
			Outcome:    "MAP >= 65",
		},
		Rationale:  "SIRS criteria plus hypotension.",
		NextUpdate: "Lactate returns 4.2.",
	}
}

func sampleCase() *models.Case {
	return &models.Case{
		Title: "Post-op sepsis",
		Patient: models.Patient{
			Age:     67,
			Sex:     "female",
			Setting: "med-surg",
			History: []string{"COPD", "colectomy POD 2"},
		},
		Stages: []models.Stage{sampleStage(1), sampleStage(2), sampleStage(3)},
	}
}

func perfectAnswer() models.StageAnswer {
	best := sampleStage(1).Best
	return models.StageAnswer{
		KeyCues:    []string{"fever", "tachycardia"},
		Hypothesis: best.Hypothesis,
		Action:     best.Action,
		Outcome:    best.Outcome,
	}
}

func TestParseCaseRoundTrip(t *testing.T) {
	original := sampleCase()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	parsed, err := ParseCase(string(data))
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseCase(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "noise around object",
			input:     `noise-prefix {"title":"T","patient":{},"stages":[]} noise-suffix`,
			wantTitle: "T",
		},
		{
			name:      "markdown fence",
			input:     "Here is your case:\n```json\n{\"title\":\"Fenced\",\"stages\":[]}\n```",
			wantTitle: "Fenced",
		},
		{
			name:      "leading whitespace",
			input:     "\n  {\"title\":\"Spaced\"}",
			wantTitle: "Spaced",
		},
		{name: "no braces", input: "not json at all", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "close before open", input: "} oops {", wantErr: true},
		{name: "broken json in span", input: `prefix {"title": } suffix`, wantErr: true},
		{name: "wrong field type", input: `{"title":"T","patient":{"age":"old"}}`, wantErr: true},
		{name: "bare null", input: "null", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCase(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCaseParseError(err))
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, c.Title)
		})
	}
}

func TestParseCaseMissingFieldsDefault(t *testing.T) {
	c, err := ParseCase(`{"title":"T","patient":{},"stages":[{"question":"Q"}]}`)
	require.NoError(t, err)

	assert.Empty(t, c.Patient.History)
	assert.Equal(t, 1, StageNumber(c.Stages[0], 0))
	assert.Equal(t, "NGN Case", (&models.Case{}).DisplayTitle())
}

func TestMembershipIssues(t *testing.T) {
	c := sampleCase()
	assert.Empty(t, MembershipIssues(c))

	c.Stages[1].Best.Action = "Give antibiotics"
	issues := MembershipIssues(c)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "stage 2")
	assert.Contains(t, issues[0], "Give antibiotics")
}

func TestKeyCuePoint(t *testing.T) {
	best := []string{"fever", "tachycardia", "hypotension"}

	tests := []struct {
		name   string
		best   []string
		chosen []string
		want   int
	}{
		{name: "majority overlap", best: best, chosen: []string{"fever", "tachycardia"}, want: 1},
		{name: "single overlap meets floor", best: best, chosen: []string{"hypotension"}, want: 1},
		{name: "nothing chosen", best: best, chosen: nil, want: 0},
		{name: "wrong cues", best: best, chosen: []string{"pain 3/10"}, want: 0},
		{name: "empty best never scores", best: nil, chosen: []string{"fever"}, want: 0},
		{name: "four best need two", best: []string{"a", "b", "c", "d"}, chosen: []string{"a", "a"}, want: 0},
		{name: "four best with two", best: []string{"a", "b", "c", "d"}, chosen: []string{"a", "d"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyCuePoint(tt.best, tt.chosen))
		})
	}
}

func TestScoreStage(t *testing.T) {
	best := sampleStage(1).Best

	assert.Equal(t, 4, ScoreStage(best, perfectAnswer()))

	partial := perfectAnswer()
	partial.Hypothesis = "sepsis"
	assert.Equal(t, 3, ScoreStage(best, partial), "hypothesis match is case-sensitive")

	assert.Equal(t, 0, ScoreStage(models.StageBest{}, models.StageAnswer{}))
}

func TestEngineFullProgression(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, StateAwaitingCase, e.State())

	e.Load(sampleCase())
	wrong := models.StageAnswer{Hypothesis: "Dehydration"}

	for i := 0; i < 3; i++ {
		require.Equal(t, StateStageActive, e.State())
		require.Equal(t, i, e.StageIndex())

		answer := perfectAnswer()
		if i == 1 {
			answer = wrong
		}
		fb, err := e.Submit(answer)
		require.NoError(t, err)
		assert.Equal(t, StateStageSubmitted, e.State())
		assert.Equal(t, i+1, fb.Attempt.StageNumber)
		assert.Equal(t, "SIRS criteria plus hypotension.", fb.Rationale)
		assert.Same(t, fb, e.Feedback())

		require.NoError(t, e.Advance())
	}

	assert.Equal(t, StateComplete, e.State())
	history := e.History()
	require.Len(t, history, 3)
	assert.Equal(t, []int{4, 0, 4}, []int{history[0].Score, history[1].Score, history[2].Score})
	assert.Equal(t, models.CaseSummary{PerfectStages: 2, TotalAttempts: 3}, e.Summary())
}

func TestEngineIllegalTransitions(t *testing.T) {
	e := NewEngine()

	_, err := e.Submit(perfectAnswer())
	assert.ErrorIs(t, err, ErrNoCase)
	assert.ErrorIs(t, e.Advance(), ErrNoCase)
	_, err = e.CurrentStage()
	assert.ErrorIs(t, err, ErrNoCase)

	e.Load(sampleCase())
	assert.ErrorIs(t, e.Advance(), ErrStageNotSubmitted)

	_, err = e.Submit(perfectAnswer())
	require.NoError(t, err)
	_, err = e.Submit(perfectAnswer())
	assert.ErrorIs(t, err, ErrStageSubmitted)
	assert.True(t, IsTransitionError(err))
	assert.Len(t, e.History(), 1, "rejected submission must not append")
}

func TestEngineLoadResets(t *testing.T) {
	e := NewEngine()
	e.Load(sampleCase())
	_, err := e.Submit(perfectAnswer())
	require.NoError(t, err)
	require.NoError(t, e.Advance())

	next := sampleCase()
	next.Title = "Second case"
	e.Load(next)

	assert.Equal(t, StateStageActive, e.State())
	assert.Equal(t, 0, e.StageIndex())
	assert.Empty(t, e.History())
	assert.Nil(t, e.Feedback())
	assert.Equal(t, "Second case", e.Case().Title)
}

func TestEngineEmptyCaseIsComplete(t *testing.T) {
	e := NewEngine()
	e.Load(&models.Case{Title: "T"})

	assert.Equal(t, StateComplete, e.State())
	_, err := e.Submit(perfectAnswer())
	assert.ErrorIs(t, err, ErrCaseComplete)
	assert.Equal(t, models.CaseSummary{}, e.Summary())
}

func TestEngineHistoryIsCopy(t *testing.T) {
	e := NewEngine()
	e.Load(sampleCase())
	_, err := e.Submit(perfectAnswer())
	require.NoError(t, err)

	h := e.History()
	h[0].Score = 0
	assert.Equal(t, 4, e.History()[0].Score)
}

func TestCaseSchema(t *testing.T) {
	data, err := json.Marshal(CaseSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "title")
	assert.Contains(t, props, "patient")
	assert.Contains(t, props, "stages")
}
