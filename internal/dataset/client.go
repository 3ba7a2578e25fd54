package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
)

// HTTPClient is the retrying HTTP implementation of the Client interface.
type HTTPClient struct {
	httpClient *retryablehttp.Client
	FileURL    string
}

// NewClient creates a new dataset HTTP client for the given file URL.
func NewClient(fileURL string) Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &HTTPClient{
		httpClient: client,
		FileURL:    fileURL,
	}
}

var _ Client = (*HTTPClient)(nil)

// ProbeFile performs a HEAD request and extracts the change-detection headers.
func (c *HTTPClient) ProbeFile(ctx context.Context) (FileInfo, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, c.FileURL, nil)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("User-Agent", "Fantavibe/1.0")

	log.Debug("Probing dataset file", "url", c.FileURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to probe dataset file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FileInfo{}, fmt.Errorf("received non-OK HTTP status from dataset probe: %d", resp.StatusCode)
	}

	info := fileInfoFromHeaders(resp.Header)
	log.Debug("Dataset probe succeeded", "etag", info.ETag, "lastModified", info.LastModified, "size", info.ContentLength)
	return info, nil
}

// DownloadFile performs a GET request and returns the payload alongside the
// metadata of the copy that was actually served.
func (c *HTTPClient) DownloadFile(ctx context.Context) ([]byte, FileInfo, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.FileURL, nil)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	req.Header.Set("User-Agent", "Fantavibe/1.0")

	log.Debug("Downloading dataset file", "url", c.FileURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to download dataset file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from dataset download", "status", resp.StatusCode, "body", string(body))
		return nil, FileInfo{}, fmt.Errorf("received non-OK HTTP status from dataset download: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to read dataset payload: %w", err)
	}

	info := fileInfoFromHeaders(resp.Header)
	if info.ContentLength == 0 {
		info.ContentLength = int64(len(data))
	}
	log.Info("Dataset download succeeded", "bytes", len(data), "etag", info.ETag)
	return data, info, nil
}

func fileInfoFromHeaders(h http.Header) FileInfo {
	info := FileInfo{
		ETag:         h.Get("ETag"),
		LastModified: h.Get("Last-Modified"),
		CheckedAt:    time.Now().UTC(),
	}
	if raw := h.Get("Content-Length"); raw != "" {
		if size, err := strconv.ParseInt(raw, 10, 64); err == nil {
			info.ContentLength = size
		}
	}
	return info
}
