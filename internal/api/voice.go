package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"liftlog/internal/constants"
	"liftlog/internal/models"
)

// VoiceLogResult is the decoded body of a successful voice upload: the
// transcript and the workout the backend created from it.
type VoiceLogResult struct {
	Transcript string         `json:"transcript"`
	Workout    models.Workout `json:"workout"`
}

// VoiceLog uploads one recorded audio blob as a multipart form under the
// fixed field name the ingestion endpoint expects. An empty blob is still
// uploaded; the backend rejects it with its own error.
func (c *Client) VoiceLog(ctx context.Context, audio []byte) (*VoiceLogResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, constants.VoiceUploadField, constants.VoiceFileName))
	header.Set("Content-Type", constants.VoiceAudioMIME)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/voice/log", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var result VoiceLogResult
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
