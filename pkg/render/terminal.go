package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/body"
	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// World y grows upward; screen rows grow downward.
type TerminalRenderer struct {
	out         io.Writer
	width       int
	height      int
	buffer      [][]rune
	scale       float64
	centerPos   mgl64.Vec2
	clearScreen bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions.
// scale is the number of world units per character cell.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec2) {
	r.centerPos = pos
}

// SetClearScreen makes Present clear the terminal before drawing.
func (r *TerminalRenderer) SetClearScreen(clear bool) {
	r.clearScreen = clear
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec2) (int, int) {
	screenX := int((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2)
	screenY := int(float64(r.height)/2 - (pos.Y()-r.centerPos.Y())/r.scale)
	return screenX, screenY
}

// screenToWorld returns the world position of the center of a cell
func (r *TerminalRenderer) screenToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(x)+0.5-float64(r.width)/2)*r.scale + r.centerPos.X(),
		(float64(r.height)/2-float64(y)-0.5)*r.scale + r.centerPos.Y(),
	}
}

func (r *TerminalRenderer) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// fill marks every cell whose center lies inside the placed shape
func (r *TerminalRenderer) fill(s shape.Shape, p physics.Placement, symbol rune) {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			if s.Contains(p.ToLocal(r.screenToWorld(x, y))) {
				r.buffer[y][x] = symbol
			}
		}
	}
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderBody implements Renderer. Discs draw as 'o', boxes as 'x'; the body
// origin is always marked even when the shape is smaller than a cell.
func (r *TerminalRenderer) RenderBody(_ uint64, _ string, b *body.MovingBody) {
	if b == nil {
		return
	}
	symbol := 'o'
	if b.Shape().Kind() == shape.KindBox {
		symbol = 'x'
	}
	r.fill(b.Shape(), b.Placement(), symbol)

	x, y := r.worldToScreen(b.Placement().Position())
	if r.inBounds(x, y) {
		r.buffer[y][x] = '@'
	}
}

// RenderBoundary implements Renderer
func (r *TerminalRenderer) RenderBoundary(_ string, b *body.Boundary) {
	if b == nil {
		return
	}
	r.fill(b.Shape(), b.Placement(), '#')
}

// Present implements Renderer
func (r *TerminalRenderer) Present() error {
	w := bufio.NewWriter(r.out)

	if r.clearScreen {
		fmt.Fprint(w, "\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	fmt.Fprint(w, border)
	for y := range r.buffer {
		fmt.Fprint(w, "|", string(r.buffer[y]), "|\n")
	}
	fmt.Fprint(w, border)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}
