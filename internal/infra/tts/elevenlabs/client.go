package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studio540/bjj-analyzer/internal/domain/narration"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// defaultVoice is the fixed fallback when the runtime voice list cannot be
// fetched. Rachel, the provider's stock narration voice.
var defaultVoice = narration.Voice{
	ID:   "21m00Tcm4TlvDq8ikWAM",
	Name: "Rachel",
}

// Client implements narration.Synthesizer over the ElevenLabs REST API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = "eleven_multilingual_v2"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) DefaultVoice() narration.Voice { return defaultVoice }

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to speech, accumulating the chunked response body
// into a single mp3 byte buffer.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if voiceID == "" {
		voiceID = defaultVoice.ID
	}

	payload, _ := json.Marshal(ttsRequest{Text: text, ModelID: c.model})
	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=mp3_44100_128", c.baseURL, voiceID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", narration.ErrSynthesisFailed, err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", narration.ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, statusError(resp.StatusCode, errBody)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("%w: reading audio: %v", narration.ErrSynthesisFailed, err)
	}
	return buf.Bytes(), nil
}

type voicesResponse struct {
	Voices []struct {
		VoiceID string `json:"voice_id"`
		Name    string `json:"name"`
		Labels  struct {
			Description string `json:"description"`
		} `json:"labels"`
		PreviewURL string `json:"preview_url"`
	} `json:"voices"`
}

// ListVoices returns the voices available at the provider.
func (c *Client) ListVoices(ctx context.Context) ([]narration.Voice, error) {
	endpoint := c.baseURL + "/v1/voices"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", narration.ErrSynthesisFailed, err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", narration.ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, statusError(resp.StatusCode, errBody)
	}

	var vResp voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vResp); err != nil {
		return nil, fmt.Errorf("%w: decoding voices: %v", narration.ErrSynthesisFailed, err)
	}

	voices := make([]narration.Voice, len(vResp.Voices))
	for i, v := range vResp.Voices {
		voices[i] = narration.Voice{
			ID:          v.VoiceID,
			Name:        v.Name,
			Description: v.Labels.Description,
			PreviewURL:  v.PreviewURL,
		}
	}
	return voices, nil
}

// statusError maps provider HTTP statuses onto the distinct narration
// sentinels so the boundary can report auth and rate-limit separately.
func statusError(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status=%d body=%s", narration.ErrAuth, status, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: status=%d body=%s", narration.ErrRateLimited, status, body)
	default:
		return fmt.Errorf("%w: status=%d body=%s", narration.ErrSynthesisFailed, status, body)
	}
}
