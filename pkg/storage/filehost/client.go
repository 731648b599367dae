package filehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
)

const uploadPath = "/api/upload-file"

// Uploader pushes generated documents to the external file host and returns
// the publicly reachable URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (string, error)
}

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the shared file-hosting service over multipart HTTP.
type Client struct {
	httpClient doer
	baseURL    string
	logg       *logger.Logger
}

func NewClient(cfg config.DocGenConfig, logg *logger.Logger) (*Client, error) {
	if cfg.UploadBaseURL == "" {
		return nil, errors.New("upload base url is required")
	}
	if cfg.UploadTimeout <= 0 {
		return nil, errors.New("upload timeout must be positive")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.UploadTimeout},
		baseURL:    strings.TrimRight(cfg.UploadBaseURL, "/"),
		logg:       logg,
	}, nil
}

type uploadResponse struct {
	Status string `json:"status"`
	Data   struct {
		Path string `json:"path"`
	} `json:"data"`
	Message string `json:"message"`
}

// Upload posts the content as a multipart file field named "file" and returns
// the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if filename == "" {
		return "", errors.New("filename is required")
	}
	if len(content) == 0 {
		return "", errors.New("content is empty")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("writing multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if len(snippet) > 0 {
			return "", fmt.Errorf("file host returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
		}
		return "", fmt.Errorf("file host returned %s", resp.Status)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if !strings.EqualFold(parsed.Status, "success") {
		if parsed.Message != "" {
			return "", fmt.Errorf("file host rejected upload: %s", parsed.Message)
		}
		return "", errors.New("file host rejected upload")
	}
	if parsed.Data.Path == "" {
		return "", errors.New("file host response missing path")
	}

	hosted := parsed.Data.Path
	if !strings.HasPrefix(hosted, "http://") && !strings.HasPrefix(hosted, "https://") {
		hosted = c.baseURL + "/" + strings.TrimLeft(hosted, "/")
	}
	if c.logg != nil {
		c.logg.Info(c.logg.WithField(ctx, "hosted_url", hosted), "document uploaded")
	}
	return hosted, nil
}
