package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
	"github.com/i-sifat/onushilonhub-sub000/internal/grammar"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
	"github.com/i-sifat/onushilonhub-sub000/internal/results"
	"github.com/i-sifat/onushilonhub-sub000/internal/session"
)

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	rules, err := grammar.NewCatalog([]grammar.Rule{
		{ID: 1, Title: "Articles"},
		{ID: 3, Title: "Adverbs"},
	})
	if err != nil {
		t.Fatal(err)
	}
	questions, err := question.NewCatalog([]question.Question{
		{
			ID: "q1", Board: "Dhaka", Year: 2019,
			Passage: &question.Passage{
				Text: "Cricket is an [a] game. It is [b] fun.",
				Blanks: []question.Blank{
					{ID: "a", Answer: "international", RuleID: 1},
					{ID: "b", Answer: "very", RuleID: 3},
				},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	mgr := session.NewManager("test-secret", time.Hour)
	store := results.NewInMemoryStore()

	r := chi.NewRouter()
	r.Post("/sessions", StartSessionHandler(mgr))
	r.Group(func(pr chi.Router) {
		pr.Use(SessionMiddleware(mgr))
		pr.Get("/grammar/rules", ListRulesHandler(rules, questions))
		pr.Get("/questions/{questionID}", GetQuestionHandler(questions))
		pr.Get("/questions/{questionID}/rule/{ruleID}", GetQuestionByRuleHandler(questions))
		pr.Post("/reveal/toggle", ToggleRevealHandler())
		pr.Post("/reveal/clear", ClearRevealHandler())
		pr.Post("/tests/submit", SubmitTestHandler(questions, store))
		pr.Get("/results", ListResultsHandler(store))
	})
	return r
}

func startSession(t *testing.T, r *chi.Mux) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/sessions", nil))
	if rec.Code != 200 {
		t.Fatalf("start session: %d %s", rec.Code, rec.Body)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out.AccessToken
}

func do(r *chi.Mux, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionRequired(t *testing.T) {
	r := testRouter(t)
	if rec := do(r, "GET", "/questions/q1", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", rec.Code)
	}
}

func TestRevealFlow(t *testing.T) {
	r := testRouter(t)
	tok := startSession(t, r)

	getBlankA := func() annotate.AnnotatedSegment {
		rec := do(r, "GET", "/questions/q1", tok, "")
		if rec.Code != 200 {
			t.Fatalf("get question: %d %s", rec.Code, rec.Body)
		}
		var out struct {
			Segments []annotate.AnnotatedSegment `json:"segments"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatal(err)
		}
		for _, s := range out.Segments {
			if s.Kind == annotate.SegmentBlank && s.BlankID == "a" {
				return s
			}
		}
		t.Fatal("blank a not rendered")
		return annotate.AnnotatedSegment{}
	}

	if s := getBlankA(); s.Revealed || s.Display != "(a) ___" {
		t.Fatalf("initial blank a = %+v", s)
	}

	rec := do(r, "POST", "/reveal/toggle", tok, `{"question_id":"q1","blank_id":"a"}`)
	if rec.Code != 200 {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body)
	}
	if s := getBlankA(); !s.Revealed || s.Display != "international" {
		t.Fatalf("after toggle blank a = %+v", s)
	}

	if rec := do(r, "POST", "/reveal/clear", tok, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", rec.Code)
	}
	if s := getBlankA(); s.Revealed {
		t.Fatalf("after clear blank a = %+v", s)
	}
}

func TestRevealIsolatedBetweenSessions(t *testing.T) {
	r := testRouter(t)
	tok1 := startSession(t, r)
	tok2 := startSession(t, r)

	do(r, "POST", "/reveal/toggle", tok1, `{"question_id":"q1","blank_id":"a"}`)

	rec := do(r, "GET", "/questions/q1", tok2, "")
	var out struct {
		Segments []annotate.AnnotatedSegment `json:"segments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	for _, s := range out.Segments {
		if s.Kind == annotate.SegmentBlank && s.Revealed {
			t.Fatalf("session 2 sees session 1's reveal: %+v", s)
		}
	}
}

func TestRuleScopedView(t *testing.T) {
	r := testRouter(t)
	tok := startSession(t, r)

	rec := do(r, "GET", "/questions/q1/rule/1", tok, "")
	if rec.Code != 200 {
		t.Fatalf("rule view: %d %s", rec.Code, rec.Body)
	}
	var out struct {
		Sentences []string `json:"sentences"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Sentences) != 1 || out.Sentences[0] != "Cricket is an [a] game." {
		t.Fatalf("sentences = %q", out.Sentences)
	}

	// not applicable -> question omitted as 404
	if rec := do(r, "GET", "/questions/q1/rule/99", tok, ""); rec.Code != 404 {
		t.Fatalf("inapplicable rule = %d, want 404", rec.Code)
	}
}

func TestListRulesWithCoverage(t *testing.T) {
	r := testRouter(t)
	tok := startSession(t, r)
	rec := do(r, "GET", "/grammar/rules", tok, "")
	if rec.Code != 200 {
		t.Fatalf("list rules: %d", rec.Code)
	}
	var out []struct {
		ID            int `json:"id"`
		QuestionCount int `json:"question_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("rules = %+v", out)
	}
	for _, rule := range out {
		if rule.QuestionCount != 1 {
			t.Errorf("rule %d coverage = %d, want 1", rule.ID, rule.QuestionCount)
		}
	}
}

func TestSubmitAndListResults(t *testing.T) {
	r := testRouter(t)
	tok := startSession(t, r)

	body := `{"board":"Dhaka","responses":{"q1":{"a":"international","b":"wrong"}}}`
	rec := do(r, "POST", "/tests/submit", tok, body)
	if rec.Code != 200 {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body)
	}
	var res struct {
		Correct int     `json:"correct"`
		Total   int     `json:"total"`
		Percent float64 `json:"percent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Correct != 1 || res.Total != 2 || res.Percent != 50 {
		t.Fatalf("result = %+v", res)
	}

	rec = do(r, "GET", "/results", tok, "")
	var list []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("results = %d, want 1", len(list))
	}
}
