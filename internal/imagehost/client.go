package imagehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"donorhub/monitoring"
)

type ClientConfig struct {
	UploadURL    string
	UploadPreset string
	Timeout      time.Duration
}

// Client uploads files to the external image host and returns the hosted
// URL. The host is a separate collaborator from the backend and takes no
// bearer token; uploads are authorized by the unsigned preset.
type Client struct {
	uploadURL    string
	uploadPreset string
	hc           *http.Client
	log          *zerolog.Logger
}

func NewClient(c *ClientConfig, log *zerolog.Logger) *Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		uploadURL:    c.UploadURL,
		uploadPreset: c.UploadPreset,
		hc:           &http.Client{Timeout: timeout},
		log:          log,
	}
}

// Upload sends the file as multipart form data and returns the opaque URL
// the host assigned to it. A failure here leaves no partial state anywhere.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	const op = "uploadImage"

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("upload_preset", c.uploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, pr)
	if err != nil {
		return "", fmt.Errorf("%s: http.NewReq: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.TrackImageUpload("transport_error", time.Since(start))
		return "", fmt.Errorf("%s: http.Do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.TrackImageUpload("rejected", time.Since(start))
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("image host rejected upload")
		return "", fmt.Errorf("%s: image host returned status %d", op, resp.StatusCode)
	}

	var reply struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		monitoring.TrackImageUpload("bad_reply", time.Since(start))
		return "", fmt.Errorf("%s: json.Decode: %w", op, err)
	}

	hostedURL := reply.SecureURL
	if hostedURL == "" {
		hostedURL = reply.URL
	}
	if hostedURL == "" {
		monitoring.TrackImageUpload("bad_reply", time.Since(start))
		return "", fmt.Errorf("%s: image host reply carried no url", op)
	}

	monitoring.TrackImageUpload("ok", time.Since(start))
	return hostedURL, nil
}
