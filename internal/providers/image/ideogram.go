package image

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"bannerkit/internal/domain"
	"bannerkit/internal/providers/ideogram"
)

type ideogramClient interface {
	GenerateImage(context.Context, ideogram.ImageRequest) (*ideogram.ImageAsset, error)
	Model() string
}

// IdeogramGenerator adapts the Ideogram client to the Generator contract:
// it maps aspect ratios onto the backend's resolution enumeration, encodes
// the color palette, and retries transient failures exactly once.
type IdeogramGenerator struct {
	client  ideogramClient
	limiter *rate.Limiter
	backoff time.Duration
}

// NewIdeogramGenerator wires the client behind a shared rate limiter so
// bursty batches stay under the backend's rate ceiling.
func NewIdeogramGenerator(client ideogramClient, limiter *rate.Limiter) *IdeogramGenerator {
	return &IdeogramGenerator{client: client, limiter: limiter, backoff: 2 * time.Second}
}

// Generate fulfils the Generator interface.
func (g *IdeogramGenerator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if g == nil || g.client == nil {
		return nil, fmt.Errorf("ideogram generator not configured")
	}
	resolution, ok := ResolutionForAspect(req.AspectRatio)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported aspect ratio %q", domain.ErrValidation, req.AspectRatio)
	}
	imageReq := ideogram.ImageRequest{
		Prompt:       req.Prompt.Text,
		Resolution:   resolution,
		ColorPalette: req.Palette,
		Seed:         req.Seed,
	}

	asset, err := g.invoke(ctx, imageReq)
	if err == nil {
		return &Result{URL: asset.URL, Seed: asset.Seed, Resolution: resolution}, nil
	}
	if !errors.Is(err, domain.ErrTransient) {
		return nil, err
	}

	// One retry after backoff; a second transient failure is reported as
	// permanent so the orchestrator never loops.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(g.backoff):
	}
	asset, retryErr := g.invoke(ctx, imageReq)
	if retryErr != nil {
		return nil, fmt.Errorf("%w: retry failed: %v", domain.ErrPermanent, retryErr)
	}
	return &Result{URL: asset.URL, Seed: asset.Seed, Resolution: resolution}, nil
}

func (g *IdeogramGenerator) invoke(ctx context.Context, req ideogram.ImageRequest) (*ideogram.ImageAsset, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	asset, err := g.client.GenerateImage(ctx, req)
	if err != nil {
		return nil, classifyBackendError(err)
	}
	return asset, nil
}

// classifyBackendError sorts backend failures into the retry taxonomy:
// 429 and 5xx are transient, any other 4xx is permanent, and everything
// else (network faults, malformed payloads) is an upstream failure.
func classifyBackendError(err error) error {
	var statusErr *ideogram.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Status == 429 || statusErr.Status >= 500:
			return fmt.Errorf("%w: %v", domain.ErrTransient, err)
		case statusErr.Status >= 400:
			return fmt.Errorf("%w: %v", domain.ErrPermanent, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}

func (g *IdeogramGenerator) String() string {
	if g == nil || g.client == nil {
		return "ideogram"
	}
	return g.client.Model()
}

var _ Generator = (*IdeogramGenerator)(nil)
