package catalog

import (
	"regexp"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// VisualKind selects what a tile displays.
type VisualKind string

const (
	VisualImage VisualKind = "image"
	VisualVideo VisualKind = "video"
	VisualText  VisualKind = "text"
)

// Visual is a tile's face: an image, a looping muted video, or a text card.
type Visual struct {
	Kind VisualKind `toml:"kind" json:"kind"`

	// Src is the media path for image and video faces.
	Src string `toml:"src" json:"src,omitempty"`

	// FocalX and FocalY place the crop center in percent. Zero means 50.
	FocalX float64 `toml:"focal_x" json:"focal_x,omitempty"`
	FocalY float64 `toml:"focal_y" json:"focal_y,omitempty"`

	// Text card fields.
	Text       string `toml:"text" json:"text,omitempty"`
	Background string `toml:"background" json:"background,omitempty"`
	Year       string `toml:"year" json:"year,omitempty"`
	Caption    string `toml:"caption" json:"caption,omitempty"`
}

var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Focal returns the crop center with defaults applied.
func (v Visual) Focal() (x, y float64) {
	x, y = v.FocalX, v.FocalY
	if x == 0 {
		x = 50
	}
	if y == 0 {
		y = 50
	}
	return x, y
}

// Validate checks that the fields required by the kind are present.
func (v Visual) Validate() error {
	switch v.Kind {
	case VisualImage, VisualVideo:
		if v.Src == "" {
			return perrors.New(perrors.ErrCodeInvalidInput, "%s visual needs a src", v.Kind)
		}
		if v.FocalX < 0 || v.FocalX > 100 || v.FocalY < 0 || v.FocalY > 100 {
			return perrors.New(perrors.ErrCodeInvalidInput, "focal point must be within 0-100")
		}
	case VisualText:
		if v.Text == "" {
			return perrors.New(perrors.ErrCodeInvalidInput, "text visual needs text")
		}
		if v.Background != "" && !colorRegex.MatchString(v.Background) {
			return perrors.New(perrors.ErrCodeInvalidInput, "invalid background color %q", v.Background)
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown visual kind %q", v.Kind)
	}
	return nil
}
