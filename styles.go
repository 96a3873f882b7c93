package lazyscroll

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	GraphicsColor            tcell.Color // Scroll bars and separators.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. item headers).
	TertiaryTextColor        tcell.Color // Tertiary text (e.g. notes).
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	GraphicsColor:            color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	TertiaryTextColor:        color.Green,
}
