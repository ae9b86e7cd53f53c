// Package portal fetches call recordings from the telephony web portal
// using a plain form login and a cookie-jar session.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
)

var (
	// ErrLoginFailed means the portal did not accept the credentials.
	ErrLoginFailed = errors.New("portal login failed")
	// ErrNotAudio means the recording endpoint answered with something
	// other than an audio stream, usually an HTML error page.
	ErrNotAudio = errors.New("recording response is not audio")
)

type Client struct {
	cfg  config.Portal
	http *http.Client
}

func New(cfg config.Portal) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("PORTAL_URL not set")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Jar: jar, Timeout: 2 * time.Minute},
	}, nil
}

// Login posts the signin form and keeps the session cookie. The portal
// always answers 200, so success is detected by the logout link appearing
// in the response page.
func (c *Client) Login(ctx context.Context) error {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/login/signin"
	form := url.Values{
		"username": {c.cfg.Username},
		"password": {c.cfg.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 || !strings.Contains(strings.ToLower(string(body)), "logout") {
		return fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}
	return nil
}

// Download streams one recording into destDir as "<call_id>.wav" and
// returns the written path. Transport failures are retried; a non-audio
// answer is terminal for the call.
func (c *Client) Download(ctx context.Context, callID, destDir string) (string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/recordings/" + url.PathEscape(callID)
	dest := filepath.Join(destDir, callID+".wav")

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("recording %s: status %d", callID, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Header.Get("Content-Type"), "audio") {
			return backoff.Permanent(fmt.Errorf("%w: call %s, status %d, content-type %q",
				ErrNotAudio, callID, resp.StatusCode, resp.Header.Get("Content-Type")))
		}

		f, err := os.Create(dest)
		if err != nil {
			return backoff.Permanent(err)
		}
		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			os.Remove(dest)
			return err
		}
		return f.Close()
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return dest, nil
}
