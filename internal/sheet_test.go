package spreadsheet

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheet_emptySheet(t *testing.T) {
	s := NewSheet()
	rows, cols := s.PrintableSize()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)

	_, ok := s.GetCell(mustPos("A1"))
	assert.False(t, ok)
}

func TestSheet_simpleFormula(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "=1+2"))
	a1, ok := s.GetCell(mustPos("A1"))
	assert.True(t, ok)
	assert.Equal(t, NumberValue(3), a1.Value())
	assert.Equal(t, "=1+2", a1.Text())
}

func TestSheet_printableBoundingBox(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "x"))
	assert.NoError(t, s.SetCell(mustPos("C3"), "y"))
	assert.NoError(t, s.ClearCell(mustPos("A1")))

	rows, cols := s.PrintableSize()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
}

func TestSheet_SetCell_invalidPosition(t *testing.T) {
	s := NewSheet()
	err := s.SetCell(Position{Row: -1, Col: 0}, "x")
	assert.Error(t, err)
	var posErr *InvalidPositionError
	assert.ErrorAs(t, err, &posErr)
}

func TestSheet_GetCell_hidesEmptyAndDangling(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "=B1"))

	_, ok := s.GetCell(mustPos("B1"))
	assert.False(t, ok, "a cell materialized only as a dangling reference is invisible to GetCell")

	ref := s.GetCellRef(mustPos("B1"))
	assert.NotNil(t, ref, "but GetCellRef exposes the materialized cell")
}

func TestSheet_ClearCell_absentSlotIsNoop(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.ClearCell(mustPos("A1")))
	_, ok := s.GetCell(mustPos("A1"))
	assert.False(t, ok)
}

func TestSheet_PrintValues(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "text"))
	assert.NoError(t, s.SetCell(mustPos("B1"), "=1+2"))
	assert.NoError(t, s.SetCell(mustPos("A2"), "=1/0"))

	var b strings.Builder
	assert.NoError(t, s.PrintValues(&b))
	assert.Equal(t, "text\t3\n#DIV/0!\t\n", b.String())
}

func TestSheet_PrintTexts(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "'text"))
	assert.NoError(t, s.SetCell(mustPos("B1"), "=1+2"))

	var b strings.Builder
	assert.NoError(t, s.PrintTexts(&b))
	assert.Equal(t, "'text\t=1+2\n", b.String())
}

func TestSheet_fibonacciChain(t *testing.T) {
	s := NewSheet()
	assert.NoError(t, s.SetCell(mustPos("A1"), "0"))
	assert.NoError(t, s.SetCell(mustPos("A2"), "1"))
	for i := 3; i <= 10; i++ {
		cell := NewPosition(i-1, 0)
		expr := "=" + NewPosition(i-3, 0).Label() + "+" + NewPosition(i-2, 0).Label()
		assert.NoError(t, s.SetCell(cell, expr))
	}
	a10, _ := s.GetCell(NewPosition(9, 0))
	assert.Equal(t, NumberValue(34), a10.Value())
}

func TestSheet_bigCycle(t *testing.T) {
	s := NewSheet()
	for i := 1; i <= 10; i++ {
		from := mustPos(fmt.Sprintf("A%d", i))
		to := fmt.Sprintf("=A%d", i+1)
		assert.NoError(t, s.SetCell(from, to))
	}
	err := s.SetCell(mustPos("A10"), "=A1")
	assert.Error(t, err)
	var circErr *CircularDependencyError
	assert.ErrorAs(t, err, &circErr)
}
