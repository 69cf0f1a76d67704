package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bannerkit/internal/domain"
)

func postIdeas(app *App, userID string, body ideasRequest) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/ideas", bytes.NewReader(payload))
	req = req.WithContext(authedContext(userID))
	rec := httptest.NewRecorder()
	app.IdeasGenerate(rec, req)
	return rec
}

func ideaBatch(texts ...string) []domain.VisualElementIdea {
	out := make([]domain.VisualElementIdea, 0, len(texts))
	for _, t := range texts {
		out = append(out, domain.VisualElementIdea{Text: t})
	}
	return out
}

func TestIdeasGenerateReturnsBatch(t *testing.T) {
	gen := &stubIdeas{batches: [][]domain.VisualElementIdea{ideaBatch("wireframe", "clipboard")}}
	app := newTestApp(&stubDB{}, gen, &stubRunner{})

	rec := postIdeas(app, "u1", ideasRequest{Topic: "Beautiful Forms", Count: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp ideasResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Ideas) != 2 {
		t.Fatalf("expected 2 ideas, got %+v", resp.Ideas)
	}
}

func TestIdeasGenerateDefaultsCount(t *testing.T) {
	gen := &stubIdeas{batches: [][]domain.VisualElementIdea{ideaBatch("x")}}
	app := newTestApp(&stubDB{}, gen, &stubRunner{})

	postIdeas(app, "u1", ideasRequest{Topic: "t"})
	if gen.requests[0].Count != 6 {
		t.Fatalf("expected default count 6, got %d", gen.requests[0].Count)
	}
}

func TestIdeasGenerateMergesSessionExcludes(t *testing.T) {
	gen := &stubIdeas{batches: [][]domain.VisualElementIdea{
		ideaBatch("wireframe", "clipboard"),
		ideaBatch("pencil sketch"),
	}}
	app := newTestApp(&stubDB{}, gen, &stubRunner{})

	postIdeas(app, "u1", ideasRequest{Topic: "Beautiful Forms", Count: 2})
	rec := postIdeas(app, "u1", ideasRequest{
		Topic:     "beautiful forms", // topic matching is case-insensitive
		Count:     1,
		Discarded: []string{"sticky note", "wireframe"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	exclude := gen.requests[1].Exclude
	want := map[string]bool{"wireframe": false, "clipboard": false, "sticky note": false}
	for _, text := range exclude {
		if _, ok := want[text]; ok {
			want[text] = true
		}
	}
	for text, found := range want {
		if !found {
			t.Fatalf("exclude list missing %q: %v", text, exclude)
		}
	}
	if len(exclude) != 3 {
		t.Fatalf("exclude list must be deduped, got %v", exclude)
	}
}

func TestIdeasGenerateSessionsAreScopedPerUser(t *testing.T) {
	gen := &stubIdeas{batches: [][]domain.VisualElementIdea{ideaBatch("wireframe")}}
	app := newTestApp(&stubDB{}, gen, &stubRunner{})

	postIdeas(app, "u1", ideasRequest{Topic: "t", Count: 1})
	postIdeas(app, "u2", ideasRequest{Topic: "t", Count: 1})
	if len(gen.requests[1].Exclude) != 0 {
		t.Fatalf("another user's session leaked into the exclude list: %v", gen.requests[1].Exclude)
	}
}

func TestIdeasGenerateRequiresTopic(t *testing.T) {
	app := newTestApp(&stubDB{}, &stubIdeas{}, &stubRunner{})
	rec := postIdeas(app, "u1", ideasRequest{Topic: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIdeasGenerateRequiresUser(t *testing.T) {
	app := newTestApp(&stubDB{}, &stubIdeas{}, &stubRunner{})
	rec := postIdeas(app, "", ideasRequest{Topic: "t"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdeasGenerateUpstreamFailure(t *testing.T) {
	gen := &stubIdeas{err: errors.New("model unavailable")}
	app := newTestApp(&stubDB{}, gen, &stubRunner{})

	rec := postIdeas(app, "u1", ideasRequest{Topic: "t"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
