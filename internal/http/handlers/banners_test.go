package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"bannerkit/internal/domain"
	"bannerkit/internal/pipeline"
)

func postBanners(app *App, userID string, body bannerGenerateRequest) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/banners/generate", bytes.NewReader(payload))
	req = req.WithContext(authedContext(userID))
	rec := httptest.NewRecorder()
	app.BannersGenerate(rec, req)
	return rec
}

func checkedElements(texts ...string) []domain.VisualElementIdea {
	out := make([]domain.VisualElementIdea, 0, len(texts))
	for _, t := range texts {
		out = append(out, domain.VisualElementIdea{Text: t, Checked: true})
	}
	return out
}

func TestBannersGenerateHappyPath(t *testing.T) {
	db := &stubDB{rowResults: []rowResult{emptyBrandRow(), creditsRow(3)}}
	runner := &stubRunner{result: &pipeline.BatchResult{
		Succeeded: []domain.GeneratedImageRecord{
			{ID: "b1", UserID: "u1", URL: "https://cdn.example/b1.png"},
			{ID: "b2", UserID: "u1", URL: "https://cdn.example/b2.png"},
		},
	}}
	app := newTestApp(db, &stubIdeas{}, runner)

	rec := postBanners(app, "u1", bannerGenerateRequest{
		Topic:      "Beautiful Forms",
		TemplateID: "sketchy",
		Count:      2,
		Elements:   checkedElements("wireframe", "clipboard"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp bannerGenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Succeeded) != 2 || len(resp.Failed) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.RemainingCredits != 3 {
		t.Fatalf("remaining credits not reported, got %d", resp.RemainingCredits)
	}

	sent := runner.requests[0]
	if sent.TemplateID != "sketchy" || len(sent.Prompts) != 2 || sent.RequestedOutputCount != 2 {
		t.Fatalf("unexpected generation request: %+v", sent)
	}
	if sent.AspectRatio != "1:1" {
		t.Fatalf("aspect ratio default not applied: %q", sent.AspectRatio)
	}
}

func TestBannersGenerateRawPrompt(t *testing.T) {
	db := &stubDB{rowResults: []rowResult{emptyBrandRow(), creditsRow(9)}}
	runner := &stubRunner{result: &pipeline.BatchResult{}}
	app := newTestApp(db, &stubIdeas{}, runner)

	rec := postBanners(app, "u1", bannerGenerateRequest{
		RawPrompt:  "a lighthouse at dusk",
		TemplateID: "sketchy",
		Count:      1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if len(runner.requests[0].Prompts) != 1 {
		t.Fatalf("raw prompt should compose without elements: %+v", runner.requests[0])
	}
}

func TestBannersGenerateUnknownTemplate(t *testing.T) {
	app := newTestApp(&stubDB{}, &stubIdeas{}, &stubRunner{})
	rec := postBanners(app, "u1", bannerGenerateRequest{Topic: "t", TemplateID: "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBannersGenerateMissingElements(t *testing.T) {
	db := &stubDB{rowResults: []rowResult{emptyBrandRow()}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	rec := postBanners(app, "u1", bannerGenerateRequest{Topic: "t", TemplateID: "sketchy"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a topic without elements, got %d", rec.Code)
	}
}

func TestBannersGenerateInsufficientCredits(t *testing.T) {
	db := &stubDB{rowResults: []rowResult{emptyBrandRow()}}
	runner := &stubRunner{err: domain.ErrInsufficientCredits}
	app := newTestApp(db, &stubIdeas{}, runner)

	rec := postBanners(app, "u1", bannerGenerateRequest{
		Topic:      "t",
		TemplateID: "sketchy",
		Elements:   checkedElements("x"),
	})
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rec.Code)
	}
}

func TestBannerSave(t *testing.T) {
	db := &stubDB{execResults: []execResult{{tag: pgconn.NewCommandTag("UPDATE 1")}}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/banners/b1/save", nil)
	req = req.WithContext(contextWithRouteParams("u1", map[string]string{"banner_id": "b1"}))
	rec := httptest.NewRecorder()
	app.BannerSave(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBannerSaveConflict(t *testing.T) {
	db := &stubDB{
		execResults: []execResult{{tag: pgconn.NewCommandTag("UPDATE 0")}},
		rowResults:  []rowResult{{vals: bannerRowVals("b1", true)}},
	}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/banners/b1/save", nil)
	req = req.WithContext(contextWithRouteParams("u1", map[string]string{"banner_id": "b1"}))
	rec := httptest.NewRecorder()
	app.BannerSave(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBannerDelete(t *testing.T) {
	db := &stubDB{execResults: []execResult{{tag: pgconn.NewCommandTag("DELETE 1")}}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/banners/b1", nil)
	req = req.WithContext(contextWithRouteParams("u1", map[string]string{"banner_id": "b1"}))
	rec := httptest.NewRecorder()
	app.BannerDelete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestBannerDeleteNotFound(t *testing.T) {
	db := &stubDB{execResults: []execResult{{tag: pgconn.NewCommandTag("DELETE 0")}}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/banners/missing", nil)
	req = req.WithContext(contextWithRouteParams("u1", map[string]string{"banner_id": "missing"}))
	rec := httptest.NewRecorder()
	app.BannerDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBannersList(t *testing.T) {
	db := &stubDB{queryRows: [][]any{bannerRowVals("b1", false), bannerRowVals("b2", true)}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/banners", nil)
	req = req.WithContext(authedContext("u1"))
	rec := httptest.NewRecorder()
	app.BannersList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Items []domain.GeneratedImageRecord `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
}

func TestBannersZipExportsSavedOnly(t *testing.T) {
	db := &stubDB{queryRows: [][]any{bannerRowVals("unsaved", false), bannerRowVals("kept", true)}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/banners/zip", nil)
	req = req.WithContext(authedContext("u1"))
	rec := httptest.NewRecorder()
	app.BannersZip(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(reader.File) != 1 || reader.File[0].Name != "banner-kept.json" {
		t.Fatalf("unexpected archive contents: %+v", reader.File)
	}
}

func TestBannersZipEmpty(t *testing.T) {
	db := &stubDB{queryRows: [][]any{bannerRowVals("unsaved", false)}}
	app := newTestApp(db, &stubIdeas{}, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/banners/zip", nil)
	req = req.WithContext(authedContext("u1"))
	rec := httptest.NewRecorder()
	app.BannersZip(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when nothing is saved, got %d", rec.Code)
	}
}
