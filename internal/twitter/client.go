package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image-resizer/internal/config"
	"image-resizer/internal/metrics"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

const (
	mediaUploadPath = "/1.1/media/upload.json"
	createTweetPath = "/2/tweets"

	// MaxMediaPerTweet is the platform limit on media attached to one post.
	MaxMediaPerTweet = 4

	maxResponseBytes = 1 << 20
)

// Client talks to the legacy v1.1 media endpoint and the v2 tweet endpoint
// using a user access token as a bearer credential.
type Client struct {
	httpClient    *http.Client
	apiBaseURL    string
	uploadBaseURL string
	logger        *slog.Logger
}

func NewClient(cfg config.TwitterConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		apiBaseURL:    cfg.APIBaseURL,
		uploadBaseURL: cfg.UploadBaseURL,
		logger:        logger,
	}
}

type mediaUploadResponse struct {
	MediaID       int64  `json:"media_id"`
	MediaIDString string `json:"media_id_string"`
}

// UploadMedia sends media in a single multipart request and returns the
// opaque media identifier.
func (c *Client) UploadMedia(ctx context.Context, accessToken string, media []byte, mediaType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("media_category", "tweet_image"); err != nil {
		return "", fmt.Errorf("failed to write media_category field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="media"; filename="banner"`)
	header.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create media part: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return "", fmt.Errorf("failed to write media part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL+mediaUploadPath, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build media upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	respBody, err := c.do(ctx, accessToken, metrics.TwitterOperationUpload, req)
	if err != nil {
		return "", err
	}

	var uploaded mediaUploadResponse
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("failed to decode media upload response: %w", err)
	}

	mediaID := uploaded.MediaIDString
	if mediaID == "" && uploaded.MediaID != 0 {
		mediaID = strconv.FormatInt(uploaded.MediaID, 10)
	}
	if mediaID == "" {
		return "", fmt.Errorf("media upload response did not contain a media id")
	}

	c.logger.Debug("Uploaded media", "media_id", mediaID, "bytes", len(media))

	return mediaID, nil
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type createTweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

// CreateTweet posts text with the given media attached and returns the raw
// response payload.
func (c *Client) CreateTweet(ctx context.Context, accessToken, text string, mediaIDs []string) (json.RawMessage, error) {
	if len(mediaIDs) > MaxMediaPerTweet {
		return nil, fmt.Errorf("a tweet can carry at most %d media, got %d", MaxMediaPerTweet, len(mediaIDs))
	}

	payload := createTweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		payload.Media = &tweetMedia{MediaIDs: mediaIDs}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+createTweetPath, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(ctx, accessToken, metrics.TwitterOperationTweet, req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("tweet response was not valid json")
	}

	return json.RawMessage(respBody), nil
}

// do sends req with the access token attached and returns the body of a 2xx
// response. There is no retry.
func (c *Client) do(ctx context.Context, accessToken, operation string, req *http.Request) ([]byte, error) {
	clientCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authorized := oauth2.NewClient(clientCtx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	start := time.Now()
	resp, err := authorized.Do(req)
	metrics.TwitterRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TwitterRequestsTotal.WithLabelValues(operation, "error").Inc()
		return nil, fmt.Errorf("twitter %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	metrics.TwitterRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read twitter %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(operation, resp, body)
		c.logger.Warn("Twitter API request failed", "operation", operation, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return body, nil
}
