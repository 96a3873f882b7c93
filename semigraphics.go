package lazyscroll

// Semigraphics provides an easy way to access unicode characters for drawing.
const (
	SemigraphicsHorizontalEllipsis = "…" // …

	BoxDrawingsLightHorizontal       = "─" // ─
	BoxDrawingsHeavyHorizontal       = "━" // ━
	BoxDrawingsLightVertical         = "│" // │
	BoxDrawingsHeavyVertical         = "┃" // ┃
	BoxDrawingsLightDownAndRight     = "┌" // ┌
	BoxDrawingsHeavyDownAndRight     = "┏" // ┏
	BoxDrawingsLightDownAndLeft      = "┐" // ┐
	BoxDrawingsHeavyDownAndLeft      = "┓" // ┓
	BoxDrawingsLightUpAndRight       = "└" // └
	BoxDrawingsHeavyUpAndRight       = "┗" // ┗
	BoxDrawingsLightUpAndLeft        = "┘" // ┘
	BoxDrawingsHeavyUpAndLeft        = "┛" // ┛
	BoxDrawingsLightVerticalAndRight = "├" // ├
	BoxDrawingsHeavyVerticalAndRight = "┣" // ┣
	BoxDrawingsLightVerticalAndLeft  = "┤" // ┤
	BoxDrawingsHeavyVerticalAndLeft  = "┫" // ┫
	BoxDrawingsLightArcDownAndRight  = "╭" // ╭
	BoxDrawingsLightArcDownAndLeft   = "╮" // ╮
	BoxDrawingsLightArcUpAndLeft     = "╯" // ╯
	BoxDrawingsLightArcUpAndRight    = "╰" // ╰
)
