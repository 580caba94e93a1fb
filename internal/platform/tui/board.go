package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/world"
)

// Each board cell is two terminal columns wide so it looks square.
const cellWidth = 2

const (
	glyphHead   = "██"
	glyphBody   = "▓▓"
	glyphReward = "◆◆"
)

// BoardRenderer draws world statuses onto a screen buffer.
// It implements loop.Renderer.
type BoardRenderer struct {
	screen *core.Screen
	frames uint64
}

// NewBoardRenderer creates a renderer painting into s.
func NewBoardRenderer(s *core.Screen) *BoardRenderer {
	return &BoardRenderer{screen: s}
}

// Frames returns how many statuses have been painted.
func (b *BoardRenderer) Frames() uint64 {
	return b.frames
}

// BorderColor returns the frame color for a status.
func BorderColor(st world.Status) core.Color {
	switch st.State {
	case world.StatePause:
		return core.ColorYellow
	case world.StateOver:
		if st.Outcome == world.OutcomeWon {
			return core.ColorGreen
		}
		return core.ColorRed
	default:
		return core.ColorOlive
	}
}

// Message returns the banner shown over the board and its color.
func Message(st world.Status) (string, core.Color) {
	msg := st.Banner()
	if msg == "" {
		return "", core.ColorDefault
	}
	return msg, BorderColor(st)
}

// Layout returns the board frame for dims centered on the screen, with one
// row above it for the HUD. ok is false when the screen is too small.
func Layout(screen core.Rect, dims world.Dimensions) (frame core.Rect, ok bool) {
	w := dims.Width*cellWidth + 2
	h := dims.Height + 2
	if w > screen.W || h+1 > screen.H {
		return core.Rect{}, false
	}
	outer := screen.Centered(w, h+1)
	return core.NewRect(outer.X, outer.Y+1, w, h), true
}

// Render implements loop.Renderer.
func (b *BoardRenderer) Render(dims world.Dimensions, st world.Status) {
	b.frames++
	s := b.screen
	s.Clear()

	frame, ok := Layout(s.Bounds(), dims)
	if !ok {
		y := s.Height() / 2
		s.DrawTextCentered(s.Bounds(), y, "Terminal too small", core.ColorRed)
		s.DrawTextCentered(s.Bounds(), y+1,
			fmt.Sprintf("need %dx%d", dims.Width*cellWidth+2, dims.Height+3), core.ColorGray)
		return
	}

	s.DrawText(frame.X, frame.Y-1, fmt.Sprintf("LEVEL %d", st.Level), core.ColorWhite)
	score := fmt.Sprintf("SCORE %d", st.Score)
	s.DrawText(frame.Right()-len(score), frame.Y-1, score, core.ColorWhite)

	s.DrawBox(frame, BorderColor(st))
	inner := frame.Inset(1)

	b.drawCell(inner, st.Reward, glyphReward, core.ColorPink)
	for i := len(st.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			b.drawCell(inner, st.Snake[i], glyphHead, core.ColorWhite)
		} else {
			b.drawCell(inner, st.Snake[i], glyphBody, core.ColorOlive)
		}
	}

	if msg, c := Message(st); msg != "" {
		s.DrawTextCentered(inner, inner.Y+inner.H/2, " "+msg+" ", c)
	}
}

func (b *BoardRenderer) drawCell(inner core.Rect, p world.Position, glyph string, c core.Color) {
	x := inner.X + p.Col*cellWidth
	y := inner.Y + p.Row
	if !inner.Contains(x, y) {
		return
	}
	b.screen.DrawText(x, y, glyph, c)
}
