package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"nursethink/db"
	"nursethink/logger"
	"nursethink/models"
	"nursethink/services"
	"nursethink/services/llm"
	"nursethink/services/llm/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stageJSON = `{"stage":1,"cues":["SpO2 88%"],"question":"Priority?",
"options":{"key_cues":["SpO2 88%","RR 28"],"hypotheses":["atelectasis"],"actions":["apply O2"],"outcomes":["SpO2 94%"]},
"best":{"key_cues":["SpO2 88%"],"hypothesis":"atelectasis","action":"apply O2","outcome":"SpO2 94%"},
"rationale":"Airway and breathing first.","next_update":"SpO2 improves."}`

const caseText = `{"title":"Post-op hypoxia","patient":{"age":70,"sex":"male","setting":"PACU","history":["COPD"]},"stages":[` + stageJSON + `]}`

func newTestRouter(gen *testutil.MockGenerator) (*mux.Router, *services.SessionStore) {
	log := logger.Nop()
	store := services.NewSessionStore(log)
	svc := services.NewCoachService(gen, db.NewMemoryAttemptRepository(), store, log)

	router := mux.NewRouter()
	NewCoachHandler(svc, log).RegisterRoutes(router)
	NewCaseHandler(svc, log).RegisterRoutes(router)
	NewChatHandler(svc, log).RegisterRoutes(router)
	return router, store
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func realAIControls() models.Controls {
	c := models.DefaultControls()
	c.UseRealAI = true
	return c
}

func TestSessionsLifecycle(t *testing.T) {
	router, store := newTestRouter(testutil.NewMockGenerator())

	rec := do(t, router, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, store.Count())

	rec = do(t, router, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplatesAndSchema(t *testing.T) {
	router, _ := newTestRouter(testutil.NewMockGenerator())

	rec := do(t, router, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	templates := decode[[]map[string]string](t, rec)
	assert.Len(t, templates, 4)

	rec = do(t, router, http.MethodGet, "/cases/schema", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "next_update")
}

func TestComposePrompt(t *testing.T) {
	router, _ := newTestRouter(testutil.NewMockGenerator())

	tests := []struct {
		name       string
		body       models.GenerateRequest
		wantStatus int
	}{
		{name: "ok", body: models.GenerateRequest{Request: "Priority?", Controls: models.Controls{Mode: "quiz", Difficulty: "hard"}}, wantStatus: http.StatusOK},
		{name: "empty request", body: models.GenerateRequest{}, wantStatus: http.StatusBadRequest},
		{name: "unknown mode", body: models.GenerateRequest{Request: "x", Controls: models.Controls{Mode: "trivia"}}, wantStatus: http.StatusBadRequest},
		{name: "non prompt mode", body: models.GenerateRequest{Request: "x", Controls: models.Controls{Mode: models.ModeStudyChat}}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/prompts", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, decode[map[string]string](t, rec)["prompt"], "DIFFICULTY")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	gen := testutil.NewMockGenerator(
		testutil.Response{Text: "A) Best answer: apply O2"},
		testutil.Response{Err: &llm.AuthError{Provider: "OpenAI", Err: llm.ErrMissingAPIKey}},
	)
	router, store := newTestRouter(gen)
	id := store.Create().ID

	rec := do(t, router, http.MethodPost, "/sessions/"+id+"/generate", models.GenerateRequest{Request: "Priority?"})
	require.Equal(t, http.StatusOK, rec.Code)
	simulated := decode[models.GenerateResponse](t, rec)
	assert.True(t, simulated.Simulated)
	assert.Equal(t, models.ModePriority, simulated.Mode)

	rec = do(t, router, http.MethodPost, "/sessions/"+id+"/generate", models.GenerateRequest{Request: "Priority?", Controls: realAIControls()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A) Best answer: apply O2", decode[models.GenerateResponse](t, rec).Answer)

	rec = do(t, router, http.MethodPost, "/sessions/"+id+"/generate", models.GenerateRequest{Request: "Priority?", Controls: realAIControls()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[models.GenerateResponse](t, rec).Error, "API key not found")

	rec = do(t, router, http.MethodPost, "/sessions/missing/generate", models.GenerateRequest{Request: "Priority?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCaseFlow(t *testing.T) {
	router, store := newTestRouter(testutil.NewMockGenerator(testutil.Response{Text: "```json\n" + caseText + "\n```"}))
	id := store.Create().ID
	base := "/sessions/" + id + "/cases"

	rec := do(t, router, http.MethodPost, base, models.StartCaseRequest{Controls: models.DefaultControls()})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "real AI is required")

	rec = do(t, router, http.MethodPost, base+"/submit", models.StageAnswer{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, base, models.StartCaseRequest{Controls: realAIControls()})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[models.CaseView](t, rec)
	assert.Equal(t, "Post-op hypoxia", view.Title)
	require.NotNil(t, view.Stage)
	assert.NotContains(t, rec.Body.String(), "rationale")

	rec = do(t, router, http.MethodPost, base+"/advance", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, base+"/submit", models.StageAnswer{
		KeyCues: []string{"SpO2 88%"}, Hypothesis: "atelectasis", Action: "apply O2", Outcome: "SpO2 94%",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[models.CaseView](t, rec)
	require.NotNil(t, view.Feedback)
	assert.Equal(t, 4, view.Feedback.Attempt.Score)
	assert.Equal(t, "SpO2 improves.", view.Feedback.NextUpdate)

	rec = do(t, router, http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "complete", decode[models.CaseView](t, rec).State)

	rec = do(t, router, http.MethodGet, base+"/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.CaseSummary{PerfectStages: 1, TotalAttempts: 1}, decode[models.CaseView](t, rec).Summary)

	rec = do(t, router, http.MethodGet, "/sessions/"+id+"/attempts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]db.StoredAttempt](t, rec), 1)
}

func TestChatEndpoints(t *testing.T) {
	router, store := newTestRouter(testutil.NewMockGenerator(testutil.Response{Text: "Which cue worries you most?"}))
	id := store.Create().ID
	path := "/sessions/" + id + "/chat"

	rec := do(t, router, http.MethodPost, path, models.ChatRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, path, models.ChatRequest{Message: "quiz me", Controls: realAIControls()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Which cue worries you most?", decode[models.ChatResponse](t, rec).Reply)

	rec = do(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]models.ChatTurn](t, rec)["transcript"], 2)

	rec = do(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, path, nil)
	assert.Empty(t, decode[map[string][]models.ChatTurn](t, rec)["transcript"])
}

func TestExtractNotes(t *testing.T) {
	router, _ := newTestRouter(testutil.NewMockGenerator())

	upload := func(filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/notes/extract", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("notes.txt", []byte("ABCs before TLC"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ABCs before TLC", body["text"])
	assert.Nil(t, body["warning"])

	rec = upload("notes.docx", []byte("PK"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[map[string]any](t, rec)["warning"])

	req := httptest.NewRequest(http.MethodPost, "/notes/extract", bytes.NewBufferString("{}"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
