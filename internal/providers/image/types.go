package image

import (
	"context"
	"strings"

	"bannerkit/internal/domain"
)

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt      domain.ComposedPrompt
	AspectRatio string
	Palette     []string
	Seed        int
}

// Result represents one generated image before persistence. The adapter
// returns ephemeral URLs only; persisting records is the orchestrator's job.
type Result struct {
	URL        string
	Seed       int
	Resolution string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}

// resolutionByAspect is the fixed lookup from abstract aspect ratios to the
// backend's resolution enumeration. A missing entry is a configuration error,
// not something to recover from at runtime.
var resolutionByAspect = map[string]string{
	"1:1":  "RESOLUTION_1024_1024",
	"16:9": "RESOLUTION_1344_768",
	"9:16": "RESOLUTION_768_1344",
	"4:3":  "RESOLUTION_1152_864",
	"3:4":  "RESOLUTION_864_1152",
}

// ResolutionForAspect maps an aspect ratio onto the backend enumeration.
func ResolutionForAspect(aspect string) (string, bool) {
	res, ok := resolutionByAspect[strings.TrimSpace(aspect)]
	return res, ok
}
