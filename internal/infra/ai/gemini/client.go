package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
)

// Client adapts the Gemini Files + Models API to the analysis.VideoModel
// port. All provider state strings are mapped to the typed HandleStatus at
// this edge; callers never see them.
type Client struct {
	client *genai.Client
	Model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: cli, Model: model}, nil
}

// Submit uploads the local file. The returned handle is usually still
// processing on the remote side.
func (c *Client) Submit(ctx context.Context, localPath, mimeType string) (analysis.MediaHandle, error) {
	f, err := c.client.Files.UploadFromPath(ctx, localPath, &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
	if err != nil {
		return analysis.MediaHandle{}, fmt.Errorf("%w: %v", analysis.ErrSubmissionFailed, err)
	}
	return handleFromFile(localPath, f), nil
}

// Poll re-queries remote processing state.
func (c *Client) Poll(ctx context.Context, h analysis.MediaHandle) (analysis.MediaHandle, error) {
	f, err := c.client.Files.Get(ctx, h.RemoteID, nil)
	if err != nil {
		return h, fmt.Errorf("%w: %v", analysis.ErrSubmissionFailed, err)
	}
	return handleFromFile(h.LocalPath, f), nil
}

// Generate runs the composed prompt against a READY handle.
func (c *Client) Generate(ctx context.Context, prompt string, h analysis.MediaHandle) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromURI(h.URI, h.MIMEType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrGenerationFailed, err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", analysis.ErrGenerationFailed)
	}
	return text, nil
}

// Delete removes the remote media object after the analysis is done.
func (c *Client) Delete(ctx context.Context, h analysis.MediaHandle) error {
	if h.RemoteID == "" {
		return nil
	}
	_, err := c.client.Files.Delete(ctx, h.RemoteID, nil)
	return err
}

func handleFromFile(localPath string, f *genai.File) analysis.MediaHandle {
	return analysis.MediaHandle{
		LocalPath: localPath,
		RemoteID:  f.Name,
		URI:       f.URI,
		MIMEType:  f.MIMEType,
		Status:    statusFromState(f.State),
	}
}

func statusFromState(s genai.FileState) analysis.HandleStatus {
	switch s {
	case genai.FileStateActive:
		return analysis.StatusReady
	case genai.FileStateFailed:
		return analysis.StatusFailed
	case genai.FileStateProcessing:
		return analysis.StatusProcessing
	default:
		return analysis.StatusPending
	}
}
