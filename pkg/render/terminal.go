package render

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// TerminalRenderer provides a simple ASCII side view for terminals.
// World Y grows upward; screen rows grow downward.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	status    string
	out       io.Writer
	ansi      bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions, writing to stdout. scale is meters per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout, width, height, scale, true)
}

// NewTerminalRendererTo creates a terminal renderer writing to w. When ansi is
// set every frame starts by clearing the screen.
func NewTerminalRendererTo(w io.Writer, width, height int, scale float64, ansi bool) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	if scale <= 0 {
		scale = 1
	}

	r := &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		out:    w,
		ansi:   ansi,
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetStatus sets the line printed under the view.
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// Status returns the line printed under the view.
func (r *TerminalRenderer) Status() string {
	return r.status
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(x, y int, c rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = c
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	if r.ansi {
		w.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	w.WriteString(border)
	for y := range r.buffer {
		w.WriteByte('|')
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|\n")
	}
	w.WriteString(border)
	if r.status != "" {
		w.WriteString(r.status)
		w.WriteByte('\n')
	}
	w.Flush()
}

// String returns the current buffer without borders, one line per row.
func (r *TerminalRenderer) String() string {
	var b strings.Builder
	for y := range r.buffer {
		b.WriteString(string(r.buffer[y]))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderGround implements entity.Renderer
func (r *TerminalRenderer) RenderGround(ground *entity.Ground) {
	_, top := r.worldToScreen(physics.Vector2D{})
	x0, _ := r.worldToScreen(physics.Vector2D{X: 0})
	x1, _ := r.worldToScreen(physics.Vector2D{X: ground.Length})
	x0 = max(x0, 0)
	x1 = min(x1, r.width-1)
	for x := x0; x <= x1; x++ {
		r.plot(x, top, '=')
		for y := top + 1; y < r.height; y++ {
			r.plot(x, y, '#')
		}
	}
}

// RenderBall implements entity.Renderer
func (r *TerminalRenderer) RenderBall(ball *entity.Ball) {
	for _, p := range ball.Trail {
		x, y := r.worldToScreen(p)
		r.plot(x, y, '.')
	}
	x, y := r.worldToScreen(ball.Position)
	r.plot(x, y, 'o')
}
