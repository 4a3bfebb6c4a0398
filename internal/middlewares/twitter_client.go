package middlewares

import (
	"context"
	"encoding/json"
	"image-resizer/internal/banner"
)

//go:generate mockgen -source=twitter_client.go -destination=../mocks/twitter.go -package=mocks

type TwitterClient interface {
	UploadMedia(ctx context.Context, accessToken string, media []byte, mediaType string) (string, error)
	CreateTweet(ctx context.Context, accessToken, text string, mediaIDs []string) (json.RawMessage, error)
}

type ImageResizer interface {
	ResizeAll(ctx context.Context, source []byte, dims []banner.Dimension) (map[string]string, error)
}
