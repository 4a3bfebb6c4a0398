package handlers

import (
	"image-resizer/internal/middlewares"
	"image-resizer/internal/version"
	"net/http"
)

func HandlerHealth(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, healthResponse{
		Status:   "OK",
		Version:  version.GetVersion(),
		Instance: ctx.InstanceID,
	})
}
