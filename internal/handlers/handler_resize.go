package handlers

import (
	"encoding/json"
	"fmt"
	"image-resizer/internal/banner"
	"image-resizer/internal/middlewares"
	"net/http"
)

// POSTResizeHandler renders the uploaded image at every requested dimension.
// Either every variant is returned or the request fails.
func POSTResizeHandler(ctx *middlewares.AppContext) {
	var req resizeRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.Logger.Debug("Failed to decode resize request", "error", err)
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Image == "" || len(req.Dimensions) == 0 {
		ctx.SetJSONError(http.StatusBadRequest, "Missing image or dimensions")
		return
	}

	for _, d := range req.Dimensions {
		if err := d.Validate(ctx.Config.Resize.MaxDimension); err != nil {
			ctx.SetJSONError(http.StatusBadRequest, fmt.Sprintf("Invalid dimension %s", d.Key()))
			return
		}
	}

	source, err := banner.DecodeDataURL(req.Image)
	if err != nil {
		ctx.Logger.Error("Failed to decode image payload", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to process image")
		return
	}

	results, err := ctx.Resizer.ResizeAll(ctx, source, req.Dimensions)
	if err != nil {
		ctx.Logger.Error("Failed to resize image", "error", err, "dimensions", len(req.Dimensions))
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to process image")
		return
	}

	ctx.Logger.Debug("Resized image", "variants", len(results), "source_bytes", len(source))

	ctx.WriteJSON(http.StatusOK, results)
}

// GETDimensionsHandler returns the fixed banner catalog.
func GETDimensionsHandler(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, banner.DefaultDimensions())
}
