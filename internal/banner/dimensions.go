package banner

import (
	"errors"
	"fmt"
)

var ErrInvalidDimension = errors.New("invalid dimension")

// Dimension is a single target banner size.
type Dimension struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

// Key returns the "{width}x{height}" identifier used in resize results.
func (d Dimension) Key() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Validate checks that both sides are positive and no larger than maxSide.
// A maxSide of zero disables the upper bound.
func (d Dimension) Validate(maxSide int) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %s must have positive width and height", ErrInvalidDimension, d.Key())
	}

	if maxSide > 0 && (d.Width > maxSide || d.Height > maxSide) {
		return fmt.Errorf("%w: %s exceeds the maximum side of %d pixels", ErrInvalidDimension, d.Key(), maxSide)
	}

	return nil
}

var catalog = []Dimension{
	{Width: 300, Height: 250, Label: "Medium Rectangle"},
	{Width: 728, Height: 90, Label: "Leaderboard"},
	{Width: 160, Height: 600, Label: "Wide Skyscraper"},
	{Width: 300, Height: 600, Label: "Half Page"},
}

// DefaultDimensions returns a copy of the fixed advertising size catalog.
func DefaultDimensions() []Dimension {
	out := make([]Dimension, len(catalog))
	copy(out, catalog)
	return out
}
