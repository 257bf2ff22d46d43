package theme

import (
	"image/color"
)

// Theme defines the colors of the crop overlay. Channels are stored
// unpremultiplied, the way they are written in theme files.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Letterbox area around the image
	Dim        color.RGBA // Veil drawn over the image outside the selection
	Text       color.RGBA // Readout and hints

	// Selection
	Border      color.RGBA
	Handle      color.RGBA
	HandleHover color.RGBA // Bottom-right handle while the pointer can grab it

	// Preview panel
	PreviewBorder color.RGBA
	Shadow        color.RGBA

	// Status message
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the built in dark theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{30, 30, 40, 255},
		Dim:               color.RGBA{0, 0, 0, 140},
		Text:              color.RGBA{240, 240, 255, 255},
		Border:            color.RGBA{80, 255, 120, 220},
		Handle:            color.RGBA{255, 240, 60, 220},
		HandleHover:       color.RGBA{255, 140, 40, 240},
		PreviewBorder:     color.RGBA{200, 200, 220, 220},
		Shadow:            color.RGBA{0, 0, 0, 140},
		MessageBackground: color.RGBA{20, 20, 28, 220},
		MessageText:       color.RGBA{240, 240, 255, 255},
	}
}
