package ideogram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bannerkit/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("ideogram: api key is required")

// Options configures the Ideogram client.
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Ideogram image-generation API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// ImageRequest captures the inputs for one generation call.
type ImageRequest struct {
	Prompt       string
	Resolution   string
	ColorPalette []string
	Seed         int
}

// ImageAsset is the normalized result from the API.
type ImageAsset struct {
	URL        string
	Seed       int
	Resolution string
}

// StatusError is returned for non-2xx responses so callers can classify
// retryability by HTTP status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ideogram: status %d: %s", e.Status, e.Body)
}

type generateRequest struct {
	ImageRequest generateImageRequest `json:"image_request"`
}

type generateImageRequest struct {
	Prompt       string        `json:"prompt"`
	Model        string        `json:"model"`
	Resolution   string        `json:"resolution"`
	ColorPalette *colorPalette `json:"color_palette,omitempty"`
	Seed         *int          `json:"seed,omitempty"`
}

type colorPalette struct {
	Members []paletteMember `json:"members"`
}

type paletteMember struct {
	ColorHex string `json:"color_hex"`
}

type generateResponse struct {
	Data []struct {
		URL        string `json:"url"`
		Seed       int    `json:"seed"`
		Resolution string `json:"resolution"`
	} `json:"data"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.ideogram.ai"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "V_2"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateImage invokes the API once and returns a single image asset.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageAsset, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("ideogram: prompt is required")
	}
	payload := generateRequest{
		ImageRequest: generateImageRequest{
			Prompt:     prompt,
			Model:      c.model,
			Resolution: req.Resolution,
		},
	}
	if len(req.ColorPalette) > 0 {
		members := make([]paletteMember, 0, len(req.ColorPalette))
		for _, hex := range req.ColorPalette {
			hex = strings.TrimSpace(hex)
			if hex == "" {
				continue
			}
			members = append(members, paletteMember{ColorHex: hex})
		}
		if len(members) > 0 {
			payload.ImageRequest.ColorPalette = &colorPalette{Members: members}
		}
	}
	if req.Seed > 0 {
		seed := req.Seed
		payload.ImageRequest.Seed = &seed
	}

	endpoint := c.baseURL + "/generate"
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ideogram: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ideogram: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ideogram: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ideogram: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("ideogram: decode response: %w", err)
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].URL) == "" {
		return nil, errors.New("ideogram: empty image url")
	}
	first := decoded.Data[0]
	c.logger.Debug().
		Str("model", c.model).
		Str("resolution", first.Resolution).
		Msg("ideogram: generated image asset")
	return &ImageAsset{URL: first.URL, Seed: first.Seed, Resolution: first.Resolution}, nil
}
