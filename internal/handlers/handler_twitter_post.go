package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"image-resizer/internal/auth"
	"image-resizer/internal/banner"
	"image-resizer/internal/metrics"
	"image-resizer/internal/middlewares"
	"image-resizer/internal/twitter"
	"net/http"

	"golang.org/x/sync/errgroup"
)

const (
	errNotAuthenticated   = "Not authenticated. Please login with Twitter first."
	errTwitterAuthFailed  = "Twitter authorization failed. Please reconnect your Twitter account."
	errTwitterPostFailed  = "Failed to post to Twitter"
	codeReauthenticate    = "reauthenticate"
	errNoImagesToPost     = "No images provided"
	errInvalidRequestBody = "Invalid request body"
)

// POSTTwitterPostHandler uploads every image concurrently and publishes one
// post with the first four media ids, in the order the images were sent.
func POSTTwitterPostHandler(ctx *middlewares.AppContext) {
	accessToken := ctx.Cookie(auth.CookieAccessToken)
	if accessToken == "" {
		ctx.SetJSONError(http.StatusUnauthorized, errNotAuthenticated)
		return
	}

	var req postRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.Logger.Debug("Failed to decode post request", "error", err)
		ctx.SetJSONError(http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if len(req.Images) == 0 {
		ctx.SetJSONError(http.StatusBadRequest, errNoImagesToPost)
		return
	}

	mediaIDs := make([]string, len(req.Images))

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range req.Images {
		i, img := i, img
		g.Go(func() error {
			raw, err := banner.DecodeDataURL(img.DataURL)
			if err != nil {
				return fmt.Errorf("image %s: %w", img.Key, err)
			}

			mediaID, err := ctx.Twitter.UploadMedia(gctx, accessToken, raw, banner.MediaTypePNG)
			if err != nil {
				return fmt.Errorf("failed to upload image %s: %w", img.Key, err)
			}

			mediaIDs[i] = mediaID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ctx.Logger.Error("Failed to upload media to Twitter", "error", err, "images", len(req.Images))
		writeTwitterError(ctx, err)
		return
	}

	attached := mediaIDs
	if len(attached) > twitter.MaxMediaPerTweet {
		ctx.Logger.Debug("Truncating attached media", "uploaded", len(mediaIDs), "attached", twitter.MaxMediaPerTweet)
		attached = attached[:twitter.MaxMediaPerTweet]
	}

	tweet, err := ctx.Twitter.CreateTweet(ctx, accessToken, ctx.Config.Twitter.Caption, attached)
	if err != nil {
		ctx.Logger.Error("Failed to create tweet", "error", err)
		writeTwitterError(ctx, err)
		return
	}

	metrics.MediaAttachedPerPost.Observe(float64(len(attached)))
	ctx.Logger.Info("Posted to Twitter", "uploaded", len(mediaIDs), "attached", len(attached))

	ctx.WriteJSON(http.StatusOK, postResponse{
		Success: true,
		Tweet:   tweet,
	})
}

// writeTwitterError passes upstream status codes through and marks
// authorization failures so the UI can ask the user to reconnect.
func writeTwitterError(ctx *middlewares.AppContext, err error) {
	var apiErr *twitter.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthorizationFailure() {
			ctx.WriteJSON(apiErr.StatusCode, twitterErrorResponse{
				Error:   errTwitterAuthFailed,
				Details: apiErr.Message,
				Code:    codeReauthenticate,
			})
			return
		}

		ctx.WriteJSON(apiErr.StatusCode, twitterErrorResponse{
			Error:   errTwitterPostFailed,
			Details: apiErr.Message,
		})
		return
	}

	ctx.WriteJSON(http.StatusInternalServerError, twitterErrorResponse{
		Error:   errTwitterPostFailed,
		Details: err.Error(),
	})
}
