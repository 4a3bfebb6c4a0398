package handlers

import (
	"encoding/json"
	"image-resizer/internal/banner"
)

type resizeRequest struct {
	Image      string             `json:"image"`
	Dimensions []banner.Dimension `json:"dimensions"`
}

type postRequest struct {
	Images orderedImages `json:"images"`
}

type postResponse struct {
	Success bool            `json:"success"`
	Tweet   json.RawMessage `json:"tweet"`
}

// twitterErrorResponse is returned when posting fails. Code is set to
// "reauthenticate" when the user must connect their account again.
type twitterErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Instance string `json:"instance"`
}
