// Package transcribe wraps the hosted speech-to-text endpoint and the text
// cleanups applied to every transcript before labeling.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
)

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// Format selects the transcript representation the endpoint returns.
type Format string

const (
	FormatText Format = "text"
	FormatVTT  Format = "vtt"
)

const transcribePrompt = "Transcreva esta chamada completa entre um agente da Portes Advogados e um cliente"

type Client struct {
	cfg config.OpenAI
}

func New(cfg config.OpenAI) *Client {
	return &Client{cfg: cfg}
}

// Transcribe uploads one audio file and returns the transcript in the
// requested format. Transport and 5xx failures are retried with exponential
// backoff. Set USE_MOCK_TRANSCRIBE=true for offline runs.
func (c *Client) Transcribe(ctx context.Context, audioPath string, format Format) (string, error) {
	if os.Getenv("USE_MOCK_TRANSCRIBE") == "true" {
		if format == FormatVTT {
			return "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nAlô, quem fala?\n\n00:00:02.500 --> 00:00:05.000\nBoa tarde, meu nome é Ana, falo da Portes Advogados.\n", nil
		}
		return "Cliente: Alô, quem fala?\nAgente: Boa tarde, falo da Portes Advogados.", nil
	}
	if c.cfg.APIKey == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	w.WriteField("model", c.cfg.TranscribeModel)
	w.WriteField("response_format", string(format))
	w.WriteField("prompt", transcribePrompt)
	w.WriteField("temperature", "0")
	_ = w.Close()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/audio/transcriptions"
	body := b.Bytes()

	var text string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("transcription server error %d: %s", resp.StatusCode, firstBytes(raw))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("transcription rejected %d: %s", resp.StatusCode, firstBytes(raw)))
		}
		text = strings.TrimSpace(string(raw))
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 3 * time.Minute
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("empty transcription")
	}
	return text, nil
}

func firstBytes(b []byte) string {
	const max = 300
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
