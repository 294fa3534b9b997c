package services

import (
	"context"
	"strings"

	"nursethink/db"
	"nursethink/logger"
	"nursethink/models"
	"nursethink/services/llm"
	"nursethink/services/ngn"
	"nursethink/services/prompt"
)

// CoachService runs the student-facing actions against a session. Validation
// problems, missing sessions and illegal case transitions come back as
// errors. Model failures are reported inline in the response and leave the
// session untouched.
type CoachService struct {
	generator llm.Generator
	attempts  db.AttemptRepository
	sessions  *SessionStore
	log       *logger.Logger
}

func NewCoachService(generator llm.Generator, attempts db.AttemptRepository, sessions *SessionStore, log *logger.Logger) *CoachService {
	return &CoachService{
		generator: generator,
		attempts:  attempts,
		sessions:  sessions,
		log:       log,
	}
}

func (s *CoachService) Sessions() *SessionStore {
	return s.sessions
}

// ComposePrompt builds the mode prompt for req without calling the model.
func (s *CoachService) ComposePrompt(req *models.GenerateRequest) (string, error) {
	request := strings.TrimSpace(req.Request)
	if request == "" {
		return "", models.ErrEmptyRequest
	}
	return prompt.ComposeModePrompt(req.Controls.Mode, request, req.Notes, req.Controls.Difficulty, req.Controls)
}

func (s *CoachService) Generate(ctx context.Context, sessionID string, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	return s.Answer(ctx, req)
}

// Answer produces one mode answer. It needs no session and is shared with
// the CLI.
func (s *CoachService) Answer(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	mode := req.Controls.Mode
	s.log.Info("Starting mode answer", "mode", mode, "real_ai", req.Controls.UseRealAI)

	if strings.TrimSpace(req.Request) == "" {
		return nil, models.ErrEmptyRequest
	}
	if !prompt.SupportsMode(mode) {
		return nil, models.NewValidationError("mode " + string(mode) + " does not produce a single answer")
	}
	if req.Controls.NotesOnly && strings.TrimSpace(req.Notes) == "" {
		return nil, models.ErrNotesInsufficient
	}

	promptText, err := s.ComposePrompt(req)
	if err != nil {
		return nil, err
	}

	resp := &models.GenerateResponse{Mode: mode}
	if req.ShowPrompt {
		resp.Prompt = promptText
	}

	if !req.Controls.UseRealAI {
		resp.Simulated = true
		resp.Answer = prompt.SimulatedResponse(mode, req.Request)
		s.log.Info("Successfully produced simulated answer", "mode", mode)
		return resp, nil
	}

	answer, err := s.generator.GenerateText(ctx, promptText)
	if err != nil {
		s.log.Error("Failed to generate answer", "mode", mode, "error", err)
		resp.Error = llm.Describe(err)
		return resp, nil
	}

	resp.Answer = answer
	s.log.Info("Successfully generated answer", "mode", mode, "chars", len(answer))
	return resp, nil
}

// StartCase generates a fresh NGN case and installs it on the session. On a
// generation or parse failure the prior case stays active.
func (s *CoachService) StartCase(ctx context.Context, sessionID string, req *models.StartCaseRequest) (*models.CaseView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !req.Controls.UseRealAI {
		return nil, models.ErrRealAIRequired
	}

	log := s.log.With("session_id", sessionID)
	log.Info("Starting NGN case generation", "topic", req.Topic)

	session.mu.Lock()
	session.caseGen++
	gen := session.caseGen
	session.mu.Unlock()

	text, genErr := s.generator.GenerateText(ctx, prompt.ComposeCaseGenerationPrompt(req.Topic))

	var parsed *models.Case
	var failure string
	switch {
	case genErr != nil:
		log.Error("Failed to generate NGN case", "error", genErr)
		failure = llm.Describe(genErr)
	default:
		parsed, err = ngn.ParseCase(text)
		if err != nil {
			log.Error("Failed to parse NGN case", "error", err)
			failure = "Could not read the generated case. Try again; your previous case is unchanged."
		}
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if gen != session.caseGen || ctx.Err() != nil {
		log.Warn("Discarding stale NGN case result", "generation", gen, "latest", session.caseGen)
		return nil, ErrStaleResult
	}

	if failure != "" {
		view := caseView(session.engine)
		view.Error = failure
		return view, nil
	}

	session.engine.Load(parsed)
	view := caseView(session.engine)
	view.Warnings = ngn.MembershipIssues(parsed)
	for _, w := range view.Warnings {
		log.Warn("Generated case has inconsistent answer key", "issue", w)
	}

	log.Info("Successfully started NGN case", "title", parsed.DisplayTitle(), "stages", len(parsed.Stages))
	return view, nil
}

func (s *CoachService) CurrentCase(sessionID string) (*models.CaseView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return caseView(session.engine), nil
}

// SubmitStage scores answer against the current stage. The attempt is also
// written to the attempt log; a failed write is logged and ignored.
func (s *CoachService) SubmitStage(ctx context.Context, sessionID string, answer models.StageAnswer) (*models.CaseView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	feedback, err := session.engine.Submit(answer)
	if err != nil {
		session.mu.Unlock()
		return nil, err
	}
	title := session.engine.Case().DisplayTitle()
	view := caseView(session.engine)
	session.mu.Unlock()

	s.log.Info("Successfully scored stage",
		"session_id", sessionID,
		"stage", feedback.Attempt.StageNumber,
		"score", feedback.Attempt.Score,
	)

	if s.attempts != nil {
		if err := s.attempts.RecordAttempt(ctx, sessionID, title, feedback.Attempt); err != nil {
			s.log.Warn("Failed to record attempt", "session_id", sessionID, "error", err)
		}
	}
	return view, nil
}

func (s *CoachService) AdvanceStage(sessionID string) (*models.CaseView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.engine.Advance(); err != nil {
		return nil, err
	}
	return caseView(session.engine), nil
}

// Attempts lists the logged attempts for a session across all its cases.
func (s *CoachService) Attempts(ctx context.Context, sessionID string) ([]*db.StoredAttempt, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	if s.attempts == nil {
		return nil, nil
	}
	return s.attempts.GetAttemptsBySession(ctx, sessionID)
}

// SendChat answers the student's message. The user turn and the reply are
// appended together, only once the reply is in hand.
func (s *CoachService) SendChat(ctx context.Context, sessionID string, req *models.ChatRequest) (*models.ChatResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, models.ErrEmptyInput
	}
	if req.Controls.NotesOnly && strings.TrimSpace(req.Notes) == "" {
		return nil, models.ErrNotesInsufficient
	}

	log := s.log.With("session_id", sessionID)

	if !req.Controls.UseRealAI {
		session.mu.Lock()
		defer session.mu.Unlock()
		session.chatGen++
		if err := session.chat.AppendUserTurn(message); err != nil {
			return nil, err
		}
		session.chat.AppendAssistantTurn(prompt.SimulatedChatReply)
		return &models.ChatResponse{
			Reply:      prompt.SimulatedChatReply,
			Simulated:  true,
			Transcript: session.chat.Turns(),
		}, nil
	}

	session.mu.Lock()
	session.chatGen++
	gen := session.chatGen
	promptText, err := session.chat.BuildPromptWith(message, req.Notes, req.Controls)
	session.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Info("Starting chat reply", "turns", session.chatLen())
	reply, genErr := s.generator.GenerateText(ctx, promptText)

	session.mu.Lock()
	defer session.mu.Unlock()

	if gen != session.chatGen || ctx.Err() != nil {
		log.Warn("Discarding stale chat reply", "generation", gen, "latest", session.chatGen)
		return nil, ErrStaleResult
	}

	if genErr != nil {
		log.Error("Failed to generate chat reply", "error", genErr)
		return &models.ChatResponse{
			Transcript: session.chat.Turns(),
			Error:      llm.Describe(genErr),
		}, nil
	}

	if err := session.chat.AppendUserTurn(message); err != nil {
		return nil, err
	}
	session.chat.AppendAssistantTurn(reply)

	log.Info("Successfully generated chat reply", "turns", session.chat.Len())
	return &models.ChatResponse{
		Reply:      reply,
		Transcript: session.chat.Turns(),
	}, nil
}

func (s *CoachService) ChatTranscript(sessionID string) ([]models.ChatTurn, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.chat.Turns(), nil
}

// ClearChat empties the transcript. A reply still in flight is discarded.
func (s *CoachService) ClearChat(sessionID string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.chat.Clear()
	session.chatGen++
	return nil
}

func (s *Session) chatLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Len()
}

func caseView(engine *ngn.Engine) *models.CaseView {
	view := &models.CaseView{
		State:      string(engine.State()),
		StageIndex: engine.StageIndex(),
		History:    engine.History(),
		Summary:    engine.Summary(),
		Feedback:   engine.Feedback(),
	}

	c := engine.Case()
	if c == nil {
		return view
	}

	patient := c.Patient
	view.Title = c.DisplayTitle()
	view.Patient = &patient
	view.TotalStages = len(c.Stages)

	if stage, err := engine.CurrentStage(); err == nil {
		view.Stage = &models.StageView{
			StageNumber: ngn.StageNumber(*stage, engine.StageIndex()),
			Cues:        stage.Cues,
			Question:    stage.Question,
			Options:     stage.Options,
		}
	}
	return view
}
