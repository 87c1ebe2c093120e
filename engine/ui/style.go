package ui

import "github.com/hubastard/grove/engine/colors"

type Style struct {
	FontSize      float32
	WindowPadding float32
	FramePadding  [2]float32
	ItemSpacing   float32
	InputWidth    float32

	Text           colors.Color
	WindowBg       colors.Color
	FrameBg        colors.Color
	FrameBgHovered colors.Color
	Button         colors.Color
	ButtonHovered  colors.Color
	ButtonActive   colors.Color
	CheckMark      colors.Color
	Separator      colors.Color
}

// DefaultStyle is a dark theme with a 13px font.
func DefaultStyle() Style {
	return Style{
		FontSize:      13,
		WindowPadding: 8,
		FramePadding:  [2]float32{4, 3},
		ItemSpacing:   4,
		InputWidth:    160,

		Text:           colors.White,
		WindowBg:       colors.Color{0.06, 0.06, 0.06, 0.94},
		FrameBg:        colors.Color{0.16, 0.29, 0.48, 0.54},
		FrameBgHovered: colors.Color{0.26, 0.59, 0.98, 0.40},
		Button:         colors.Color{0.26, 0.59, 0.98, 0.40},
		ButtonHovered:  colors.Color{0.26, 0.59, 0.98, 1.00},
		ButtonActive:   colors.Color{0.06, 0.53, 0.98, 1.00},
		CheckMark:      colors.Color{0.26, 0.59, 0.98, 1.00},
		Separator:      colors.Gray.WithAlpha(0.5),
	}
}
