// Package ui draws the tile world in a terminal using tcell.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with the handful of calls the game needs.
type Screen struct {
	screen tcell.Screen
	close  sync.Once
}

// NewScreen opens the terminal with mouse reporting enabled.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, e.g. a simulation
// screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal. Calls after the first do nothing.
func (s *Screen) Close() {
	s.close.Do(s.screen.Fini)
}

// PollEvent blocks for the next event. It returns nil once the screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the back buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes changed cells to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync repaints the whole terminal.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// SetContent sets one cell.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Content returns the rune and style of one cell.
func (s *Screen) Content(x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.screen.GetContent(x, y)
	return r, style
}

// Size returns the terminal size in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}
