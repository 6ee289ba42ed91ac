package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/geometry"
)

func rowString(c *canvas, row, c0, c1 int) string {
	var b strings.Builder
	for col := c0; col <= c1; col++ {
		b.WriteRune(c.cells[row][col].r)
	}
	return b.String()
}

func TestCellMapping(t *testing.T) {
	col, row := cellAt(35, 170)
	assert.Equal(t, 3, col)
	assert.Equal(t, 8, row)

	x, y := pageAt(3, 8)
	assert.Equal(t, 35.0, x)
	assert.Equal(t, 170.0, y)

	// Out-of-page points clamp to the grid.
	col, row = cellAt(-50, 9999)
	assert.Equal(t, 0, col)
	assert.Equal(t, canvasRows-1, row)
}

func TestDrawBoxBordersAndLabel(t *testing.T) {
	c := newCanvas()
	c.drawBox(geometry.Rect{Left: 100, Top: 100, Right: 300, Bottom: 200}, "Card", layerElement)

	assert.Equal(t, '┌', c.cells[5][10].r)
	assert.Equal(t, '┐', c.cells[5][29].r)
	assert.Equal(t, '└', c.cells[9][10].r)
	assert.Equal(t, '┘', c.cells[9][29].r)
	assert.Equal(t, '│', c.cells[7][10].r)

	assert.Contains(t, rowString(c, 7, 11, 28), "Card")
}

func TestDrawBoxSingleRowIsInline(t *testing.T) {
	c := newCanvas()
	c.drawBox(geometry.Rect{Left: 20, Top: 0, Right: 100, Bottom: 18}, "Home", layerElement)

	assert.Equal(t, '[', c.cells[0][2].r)
	assert.Equal(t, ']', c.cells[0][9].r)
	assert.Contains(t, rowString(c, 0, 3, 8), "Home")
}

func TestOverlayShadesBlanksAndRecolorsElements(t *testing.T) {
	c := newCanvas()
	c.drawBox(geometry.Rect{Left: 100, Top: 100, Right: 300, Bottom: 200}, "", layerElement)
	c.drawOverlay(geometry.Rect{Left: 0, Top: 0, Right: 400, Bottom: 480})

	// A blank cell inside the overlay picks up shading.
	assert.Equal(t, '░', c.cells[0][0].r)
	assert.Equal(t, layerOverlay, c.cells[0][0].layer)

	// An element border keeps its rune but joins the overlay layer.
	assert.Equal(t, '┌', c.cells[5][10].r)
	assert.Equal(t, layerOverlay, c.cells[5][10].layer)

	// Cells outside the overlay are untouched.
	assert.Equal(t, ' ', c.cells[0][60].r)
	assert.Equal(t, layerBlank, c.cells[0][60].layer)
}

func TestPaintPageSkipsHiddenElements(t *testing.T) {
	doc := fixture.Demo()
	c := newCanvas()
	c.paintPage(doc, func(string) bool { return false })

	// The ghost button region (400,400)-(520,430) stays blank.
	for row := 20; row <= 21; row++ {
		for col := 41; col <= 50; col++ {
			assert.Equalf(t, ' ', c.cells[row][col].r, "cell %d,%d", row, col)
		}
	}

	// Visible elements got labels.
	assert.Contains(t, rowString(c, 8, 0, canvasCols-1), "Get st")
}

func TestPaintPageMarksHighlights(t *testing.T) {
	doc := fixture.Demo()
	c := newCanvas()
	c.paintPage(doc, func(id string) bool { return id == "cta-start" })

	// cta-start spans cells (4,8)-(15,9).
	assert.Equal(t, layerActive, c.cells[8][4].layer)
	// Its neighbor button stays on the element layer.
	assert.Equal(t, layerElement, c.cells[8][18].layer)
}
