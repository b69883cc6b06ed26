package commands

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"

	"github.com/gridsnake/engine/rules"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	wallColor    = termbox.ColorWhite
	patrolColor  = termbox.ColorRed

	boardLeft = 4
	boardTop  = 2
)

var fruitGlyphs = map[rules.FruitKind]rune{
	rules.FruitOrange:     '🍊',
	rules.FruitGrape:      '🍇',
	rules.FruitApple:      '🍎',
	rules.FruitCherry:     '🍒',
	rules.FruitStrawberry: '🍓',
}

func render(snap *rules.Snapshot) error {
	if snap == nil {
		return errors.New("received nil frame")
	}
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	renderFrame(snap)
	renderObstacles(snap)
	renderCollectibles(snap)
	renderSnake(snap)
	renderHUD(snap)

	return termbox.Flush()
}

// cell maps a board coordinate into screen space, inside the frame.
func cell(x, y int) (int, int) {
	return boardLeft + x, boardTop + y + 1
}

func renderFrame(snap *rules.Snapshot) {
	left, top := boardLeft, boardTop
	right := left + snap.Width
	bottom := top + snap.Height + 1

	for y := top + 1; y < bottom; y++ {
		termbox.SetCell(left-1, y, '│', defaultColor, bgColor)
		termbox.SetCell(right, y, '│', defaultColor, bgColor)
	}
	for x := left; x < right; x++ {
		termbox.SetCell(x, top, '─', defaultColor, bgColor)
		termbox.SetCell(x, bottom, '─', defaultColor, bgColor)
	}
	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)
}

func renderSnake(snap *rules.Snapshot) {
	for i, b := range snap.Snake {
		x, y := cell(b.X, b.Y)
		color := snakeColor
		if i == 0 {
			color = termbox.ColorYellow
		}
		termbox.SetCell(x, y, ' ', color, color)
	}
}

func renderObstacles(snap *rules.Snapshot) {
	for _, o := range snap.Obstacles {
		x, y := cell(o.X, o.Y)
		termbox.SetCell(x, y, '█', wallColor, bgColor)
	}
	for _, m := range snap.Moving {
		x, y := cell(m.Pos.X, m.Pos.Y)
		termbox.SetCell(x, y, '▓', patrolColor, bgColor)
	}
}

func renderCollectibles(snap *rules.Snapshot) {
	for _, f := range snap.Foods {
		glyph, ok := fruitGlyphs[f.Kind]
		if !ok {
			glyph = '•'
		}
		x, y := cell(f.Pos.X, f.Pos.Y)
		termbox.SetCell(x, y, glyph, defaultColor, bgColor)
	}
	if snap.Golden != nil {
		x, y := cell(snap.Golden.Pos.X, snap.Golden.Pos.Y)
		termbox.SetCell(x, y, '★', termbox.ColorYellow, bgColor)
	}
	for _, p := range snap.Poisons {
		x, y := cell(p.Pos.X, p.Pos.Y)
		termbox.SetCell(x, y, '☠', termbox.ColorMagenta, bgColor)
	}
	if snap.Clock != nil {
		x, y := cell(snap.Clock.Pos.X, snap.Clock.Pos.Y)
		termbox.SetCell(x, y, '◷', termbox.ColorCyan, bgColor)
	}
}

func renderHUD(snap *rules.Snapshot) {
	tbprint(boardLeft, boardTop-1, defaultColor, bgColor, hudLine(snap))

	msgY := boardTop + snap.Height + 3
	switch {
	case snap.WaitingToStart:
		tbprint(boardLeft, msgY, defaultColor, bgColor, "Press an arrow key (or hjkl) to start")
	case snap.WaitingToResume:
		tbprint(boardLeft, msgY, defaultColor, bgColor, "Press a direction to resume")
	case snap.Paused:
		tbprint(boardLeft, msgY, defaultColor, bgColor, "Paused - p to resume, q to quit")
	case snap.State == rules.StateGameOver:
		tbprint(boardLeft, msgY, termbox.ColorRed, bgColor, "Game over! r to retry, q to quit")
	case snap.State == rules.StateLevelComplete:
		tbprint(boardLeft, msgY, termbox.ColorGreen, bgColor, "Level complete!")
	}
}

func hudLine(snap *rules.Snapshot) string {
	line := fmt.Sprintf("Score %d", snap.Score)
	switch snap.Mode {
	case rules.ModeLevels:
		line += fmt.Sprintf("  Level %d (target %d)", snap.Level, snap.Level*rules.LevelTargetStep)
	case rules.ModeTime:
		line += fmt.Sprintf("  Time %02.0fs", snap.TimeLeftSeconds)
	}
	return line
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
