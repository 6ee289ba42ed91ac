package model

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/geometry"
)

// The fixture page is 800x480 page units; the canvas maps it onto an
// 80x24 cell grid, so one cell covers 10x20 units.
const (
	canvasCols = 80
	canvasRows = 24
	cellWidth  = 10.0
	cellHeight = 20.0
)

type cellLayer uint8

const (
	layerBlank cellLayer = iota
	layerElement
	layerActive
	layerOverlay
)

type canvasCell struct {
	r     rune
	layer cellLayer
}

// canvas is the cell buffer the sandbox paints the page map into.
type canvas struct {
	cells [canvasRows][canvasCols]canvasCell
}

func newCanvas() *canvas {
	c := &canvas{}
	for row := 0; row < canvasRows; row++ {
		for col := 0; col < canvasCols; col++ {
			c.cells[row][col] = canvasCell{r: ' ', layer: layerBlank}
		}
	}
	return c
}

// cellAt converts a page point to cell coordinates.
func cellAt(x, y float64) (col, row int) {
	return clampInt(int(x/cellWidth), 0, canvasCols-1),
		clampInt(int(y/cellHeight), 0, canvasRows-1)
}

// pageAt converts a cell coordinate to the page point at the cell center.
func pageAt(col, row int) (x, y float64) {
	return float64(col)*cellWidth + cellWidth/2,
		float64(row)*cellHeight + cellHeight/2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *canvas) set(row, col int, r rune, layer cellLayer) {
	if row < 0 || row >= canvasRows || col < 0 || col >= canvasCols {
		return
	}
	if layer < c.cells[row][col].layer {
		return
	}
	c.cells[row][col] = canvasCell{r: r, layer: layer}
}

// drawBox draws an element as a bordered box with its label centered, or a
// compact inline form when the element spans a single cell row.
func (c *canvas) drawBox(rect geometry.Rect, label string, layer cellLayer) {
	c0, r0 := cellAt(rect.Left, rect.Top)
	c1, r1 := cellAt(rect.Right-1, rect.Bottom-1)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}

	if r0 == r1 {
		c.drawInline(r0, c0, c1, label, layer)
		return
	}

	for col := c0; col <= c1; col++ {
		c.set(r0, col, '─', layer)
		c.set(r1, col, '─', layer)
	}
	for row := r0; row <= r1; row++ {
		c.set(row, c0, '│', layer)
		c.set(row, c1, '│', layer)
	}
	c.set(r0, c0, '┌', layer)
	c.set(r0, c1, '┐', layer)
	c.set(r1, c0, '└', layer)
	c.set(r1, c1, '┘', layer)

	c.drawLabel((r0+r1)/2, c0+1, c1-1, label, layer)
}

// drawInline renders a one-row element as a bracketed label.
func (c *canvas) drawInline(row, c0, c1 int, label string, layer cellLayer) {
	if c1 == c0 {
		c.set(row, c0, '▪', layer)
		return
	}
	c.set(row, c0, '[', layer)
	c.set(row, c1, ']', layer)
	c.drawLabel(row, c0+1, c1-1, label, layer)
}

func (c *canvas) drawLabel(row, c0, c1 int, label string, layer cellLayer) {
	width := c1 - c0 + 1
	if width <= 0 || label == "" {
		return
	}
	runes := []rune(label)
	if len(runes) > width {
		runes = runes[:width]
	}
	start := c0 + (width-len(runes))/2
	for i, r := range runes {
		c.set(row, start+i, r, layer)
	}
}

// drawOverlay shades the rubber-band rectangle.
func (c *canvas) drawOverlay(rect geometry.Rect) {
	c0, r0 := cellAt(rect.Left, rect.Top)
	c1, r1 := cellAt(rect.Right-1, rect.Bottom-1)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cur := c.cells[row][col]
			r := cur.r
			if cur.layer == layerBlank {
				r = '░'
			}
			c.cells[row][col] = canvasCell{r: r, layer: layerOverlay}
		}
	}
}

// paintPage draws the whole fixture document, highlight state included.
func (c *canvas) paintPage(doc *fixture.Document, highlighted func(id string) bool) {
	// Preorder: parents first, children paint over them.
	for _, view := range doc.Elements() {
		if view.Depth() == 0 {
			continue
		}
		if view.Style("display") == "none" || view.Style("visibility") == "hidden" {
			continue
		}

		layer := layerElement
		if highlighted(view.ID()) {
			layer = layerActive
		}
		c.drawBox(view.Bounds(), elementLabel(doc, view.ID()), layer)
	}
}

// elementLabel picks the on-canvas label: text, falling back to the tag,
// with a click tally suffix once activation has hit the element.
func elementLabel(doc *fixture.Document, id string) string {
	el := doc.Element(id)
	if el == nil {
		return id
	}
	label := el.Text()
	if label == "" {
		label = "<" + el.Tag() + ">"
	}
	if n := el.Clicks(); n > 0 {
		label += " ✓"
		if n > 1 {
			label += itoa(n)
		}
	}
	return label
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for n > 0 && i > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// render joins the buffer into a styled string, one run of equal layer at
// a time.
func (c *canvas) render(t *styles.Theme) string {
	styleFor := map[cellLayer]lipgloss.Style{
		layerBlank:   t.Subtle,
		layerElement: t.CanvasElement,
		layerActive:  t.CanvasActive,
		layerOverlay: t.CanvasOverlay,
	}

	var out strings.Builder
	for row := 0; row < canvasRows; row++ {
		col := 0
		for col < canvasCols {
			layer := c.cells[row][col].layer
			var run strings.Builder
			for col < canvasCols && c.cells[row][col].layer == layer {
				run.WriteRune(c.cells[row][col].r)
				col++
			}
			out.WriteString(styleFor[layer].Render(run.String()))
		}
		if row < canvasRows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
