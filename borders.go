package lazyscroll

// BorderSet defines the glyphs used when box borders are drawn. LeftT and
// RightT join a horizontal divider to the side borders.
type BorderSet struct {
	Top, Bottom, Left, Right string

	TopLeft, TopRight       string
	BottomLeft, BottomRight string

	LeftT, RightT string
}

// BorderSetPlain uses light box drawing characters with square corners.
func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsLightHorizontal,
		Bottom:      BoxDrawingsLightHorizontal,
		Left:        BoxDrawingsLightVertical,
		Right:       BoxDrawingsLightVertical,
		TopLeft:     BoxDrawingsLightDownAndRight,
		TopRight:    BoxDrawingsLightDownAndLeft,
		BottomLeft:  BoxDrawingsLightUpAndRight,
		BottomRight: BoxDrawingsLightUpAndLeft,
		LeftT:       BoxDrawingsLightVerticalAndRight,
		RightT:      BoxDrawingsLightVerticalAndLeft,
	}
}

// BorderSetRound is BorderSetPlain with arc corners.
func BorderSetRound() BorderSet {
	b := BorderSetPlain()
	b.TopLeft = BoxDrawingsLightArcDownAndRight
	b.TopRight = BoxDrawingsLightArcDownAndLeft
	b.BottomLeft = BoxDrawingsLightArcUpAndRight
	b.BottomRight = BoxDrawingsLightArcUpAndLeft
	return b
}

func BorderSetThick() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsHeavyHorizontal,
		Bottom:      BoxDrawingsHeavyHorizontal,
		Left:        BoxDrawingsHeavyVertical,
		Right:       BoxDrawingsHeavyVertical,
		TopLeft:     BoxDrawingsHeavyDownAndRight,
		TopRight:    BoxDrawingsHeavyDownAndLeft,
		BottomLeft:  BoxDrawingsHeavyUpAndRight,
		BottomRight: BoxDrawingsHeavyUpAndLeft,
		LeftT:       BoxDrawingsHeavyVerticalAndRight,
		RightT:      BoxDrawingsHeavyVerticalAndLeft,
	}
}

// BorderSetByName returns one of "plain", "round" or "thick".
func BorderSetByName(name string) (BorderSet, bool) {
	switch name {
	case "plain":
		return BorderSetPlain(), true
	case "round":
		return BorderSetRound(), true
	case "thick":
		return BorderSetThick(), true
	}
	return BorderSet{}, false
}

type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}
