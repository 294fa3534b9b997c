package models

// GenerateRequest asks for a single mode answer. It also drives prompt
// previews, where Controls.UseRealAI is ignored.
type GenerateRequest struct {
	Request    string   `json:"request"`
	Notes      string   `json:"notes"`
	Controls   Controls `json:"controls"`
	ShowPrompt bool     `json:"show_prompt"`
}

type GenerateResponse struct {
	Mode      Mode   `json:"mode"`
	Answer    string `json:"answer,omitempty"`
	Simulated bool   `json:"simulated"`
	Prompt    string `json:"prompt,omitempty"`
	Error     string `json:"error,omitempty"`
}

type StartCaseRequest struct {
	Topic    string   `json:"topic"`
	Controls Controls `json:"controls"`
}

type ChatRequest struct {
	Message  string   `json:"message"`
	Notes    string   `json:"notes"`
	Controls Controls `json:"controls"`
}

type ChatResponse struct {
	Reply      string     `json:"reply,omitempty"`
	Simulated  bool       `json:"simulated"`
	Transcript []ChatTurn `json:"transcript"`
	Error      string     `json:"error,omitempty"`
}

// StageView is a stage as shown to the student, without the answer key.
type StageView struct {
	StageNumber int          `json:"stage"`
	Cues        []string     `json:"cues"`
	Question    string       `json:"question"`
	Options     StageOptions `json:"options"`
}

type CaseView struct {
	State       string          `json:"state"`
	Title       string          `json:"title,omitempty"`
	Patient     *Patient        `json:"patient,omitempty"`
	StageIndex  int             `json:"stage_index"`
	TotalStages int             `json:"total_stages"`
	Stage       *StageView      `json:"stage,omitempty"`
	Feedback    *StageFeedback  `json:"feedback,omitempty"`
	History     []AttemptRecord `json:"history"`
	Summary     CaseSummary     `json:"summary"`
	Warnings    []string        `json:"warnings,omitempty"`
	Error       string          `json:"error,omitempty"`
}
