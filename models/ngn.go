package models

type Patient struct {
	Age     int      `json:"age"`
	Sex     string   `json:"sex"`
	Setting string   `json:"setting"`
	History []string `json:"history"`
}

type StageOptions struct {
	KeyCues    []string `json:"key_cues"`
	Hypotheses []string `json:"hypotheses"`
	Actions    []string `json:"actions"`
	Outcomes   []string `json:"outcomes"`
}

type StageBest struct {
	KeyCues    []string `json:"key_cues"`
	Hypothesis string   `json:"hypothesis"`
	Action     string   `json:"action"`
	Outcome    string   `json:"outcome"`
}

type Stage struct {
	StageNumber int          `json:"stage"`
	Cues        []string     `json:"cues"`
	Question    string       `json:"question"`
	Options     StageOptions `json:"options"`
	Best        StageBest    `json:"best"`
	Rationale   string       `json:"rationale"`
	NextUpdate  string       `json:"next_update"`
}

// Case is an NGN case progression as emitted by the model.
type Case struct {
	Title   string  `json:"title"`
	Patient Patient `json:"patient"`
	Stages  []Stage `json:"stages"`
}

// DisplayTitle falls back to a generic title when the model omitted one.
func (c *Case) DisplayTitle() string {
	if c.Title == "" {
		return "NGN Case"
	}
	return c.Title
}

// StageAnswer is what the student picked for one stage.
type StageAnswer struct {
	KeyCues    []string `json:"key_cues"`
	Hypothesis string   `json:"hypothesis"`
	Action     string   `json:"action"`
	Outcome    string   `json:"outcome"`
}

type AttemptRecord struct {
	StageNumber      int      `json:"stage"`
	Score            int      `json:"score"`
	ChosenKeyCues    []string `json:"chosen_key_cues"`
	ChosenHypothesis string   `json:"chosen_hypothesis"`
	ChosenAction     string   `json:"chosen_action"`
	ChosenOutcome    string   `json:"chosen_outcome"`
}

type StageFeedback struct {
	Attempt    AttemptRecord `json:"attempt"`
	MaxScore   int           `json:"max_score"`
	Best       StageBest     `json:"best"`
	Rationale  string        `json:"rationale"`
	NextUpdate string        `json:"next_update"`
}

type CaseSummary struct {
	PerfectStages int `json:"perfect_stages"`
	TotalAttempts int `json:"total_attempts"`
}
