package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"bannerkit/internal/domain"
	"bannerkit/internal/infra"
	"bannerkit/internal/providers/image"
)

// Store is the slice of persistence the orchestrator needs.
type Store interface {
	CreditBalance(ctx context.Context, userID string) (int, error)
	DecrementCreditIfPositive(ctx context.Context, userID string) (bool, error)
	CreateImageRecord(ctx context.Context, rec domain.GeneratedImageRecord) (domain.GeneratedImageRecord, error)
	GrantCredits(ctx context.Context, userID string, amount int) (int, error)
}

// PromptFailure reports one prompt that produced no billed record.
type PromptFailure struct {
	Prompt domain.ComposedPrompt `json:"prompt"`
	Err    error                 `json:"-"`
	Reason string                `json:"reason"`
}

// BatchResult is the outcome of one generation batch. Succeeded is ordered by
// completion, not by input position; each record carries its own prompt text
// for correlation.
type BatchResult struct {
	Succeeded []domain.GeneratedImageRecord `json:"succeeded"`
	Failed    []PromptFailure               `json:"failed"`
}

// Orchestrator fans composed prompts out to the image backend with bounded
// concurrency, bills credits per delivered image, and persists the records.
type Orchestrator struct {
	store     Store
	generator image.Generator
	fanout    int64
	logger    infra.Logger
}

func NewOrchestrator(store Store, generator image.Generator, fanout int, logger infra.Logger) *Orchestrator {
	if fanout < 1 {
		fanout = 1
	}
	return &Orchestrator{store: store, generator: generator, fanout: int64(fanout), logger: logger}
}

// Generate runs one batch. Only validation failures and a zero balance before
// dispatch surface as errors; everything else is captured per prompt so a
// partial batch still returns whatever succeeded.
func (o *Orchestrator) Generate(ctx context.Context, req domain.GenerationRequest) (*BatchResult, error) {
	tpl, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	balance, err := o.store.CreditBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if balance < 1 {
		return nil, domain.ErrInsufficientCredits
	}

	palette := tpl.DefaultPalette
	if req.UseBrandColors && req.BrandOverrides.HasColors() {
		palette = req.BrandOverrides.ColorScheme
	}

	batchID := uuid.NewString()
	o.logger.Info().
		Str("batch_id", batchID).
		Str("user_id", req.UserID).
		Int("prompts", len(req.Prompts)).
		Int("credits", balance).
		Msg("pipeline: batch started")

	// Branches already dispatched run to completion even when the caller
	// abandons the request; only the acquisition of new slots observes the
	// caller's cancellation.
	workCtx := context.WithoutCancel(ctx)

	result := &BatchResult{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(o.fanout)

	for i, prompt := range req.Prompts {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			result.Failed = append(result.Failed, failure(prompt, err))
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(index int, prompt domain.ComposedPrompt) {
			defer wg.Done()
			defer sem.Release(1)
			rec, err := o.runBranch(workCtx, req, prompt, palette, batchID, index)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// One branch's failure never aborts the batch.
				result.Failed = append(result.Failed, failure(prompt, err))
				return
			}
			result.Succeeded = append(result.Succeeded, *rec)
		}(i, prompt)
	}
	wg.Wait()

	o.logger.Info().
		Str("batch_id", batchID).
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("pipeline: batch finished")
	return result, nil
}

func (o *Orchestrator) validate(req domain.GenerationRequest) (domain.Template, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return domain.Template{}, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if req.RequestedOutputCount < 1 {
		return domain.Template{}, fmt.Errorf("%w: requested output count must be at least 1", domain.ErrValidation)
	}
	if len(req.Prompts) == 0 {
		return domain.Template{}, fmt.Errorf("%w: at least one composed prompt is required", domain.ErrValidation)
	}
	for _, p := range req.Prompts {
		if strings.TrimSpace(p.Text) == "" {
			return domain.Template{}, fmt.Errorf("%w: composed prompt text is empty", domain.ErrValidation)
		}
	}
	tpl, ok := domain.ResolveTemplate(req.TemplateID)
	if !ok {
		return domain.Template{}, fmt.Errorf("%w: unknown template %q", domain.ErrValidation, req.TemplateID)
	}
	return tpl, nil
}

// runBranch performs one backend call and, on success, bills and persists.
// The charge happens before the insert and is guarded by the conditional
// update: when the balance hit zero mid-flight the image is discarded as
// credit-exhausted instead of being kept unbilled.
func (o *Orchestrator) runBranch(ctx context.Context, req domain.GenerationRequest, prompt domain.ComposedPrompt, palette []string, batchID string, index int) (*domain.GeneratedImageRecord, error) {
	res, err := o.generator.Generate(ctx, image.GenerateRequest{
		Prompt:      prompt,
		AspectRatio: req.AspectRatio,
		Palette:     palette,
		Seed:        deterministicSeed(batchID, prompt.Text, index),
	})
	if err != nil {
		return nil, err
	}

	charged, err := o.store.DecrementCreditIfPositive(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !charged {
		return nil, fmt.Errorf("%w: balance reached zero before this image could be billed", domain.ErrCreditExhausted)
	}

	rec, err := o.store.CreateImageRecord(ctx, domain.GeneratedImageRecord{
		UserID:     req.UserID,
		TemplateID: req.TemplateID,
		URL:        res.URL,
		UserPrompt: prompt.Text,
		Seed:       res.Seed,
		Resolution: res.Resolution,
		PostTopic:  req.PostTopic,
	})
	if err != nil {
		// The credit was taken but the record never landed; hand it back.
		if _, refundErr := o.store.GrantCredits(ctx, req.UserID, 1); refundErr != nil {
			o.logger.Error().Err(refundErr).
				Str("batch_id", batchID).
				Str("user_id", req.UserID).
				Msg("pipeline: refund after failed persist")
		}
		return nil, err
	}
	return &rec, nil
}

func failure(prompt domain.ComposedPrompt, err error) PromptFailure {
	return PromptFailure{Prompt: prompt, Err: err, Reason: err.Error()}
}

func deterministicSeed(values ...any) int {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	n := binary.BigEndian.Uint32(sum[:4]) % 2147483647
	if n == 0 {
		n = 1
	}
	return int(n)
}
