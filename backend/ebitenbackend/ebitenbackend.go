// Package ebitenbackend displays a sketch.Window in an Ebitengine window.
//
// Usage:
//
//	s := ebitenbackend.New(ebitenbackend.Config{Title: "demo", Width: 640, Height: 480})
//	w, _ := sketch.NewWindow(s, 640, 480)
//	// ... build the scene ...
//	if err := s.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Scene mutations must happen on the game goroutine: from Config.Update,
// from event listeners, or from image load callbacks.
package ebitenbackend

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sketch"
)

// Config controls the window opened by Run.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height size the OS window in device pixels. Zero values use
	// the size of the first painted frame, or 640x480.
	Width, Height int
	// Background clears each frame. Defaults to white.
	Background color.Color
	// ShowFPS overlays the current FPS and TPS in the top-left corner. F3
	// toggles it at run time.
	ShowFPS bool
	// Resizable lets the user resize the OS window.
	Resizable bool
	// Update runs once per tick after input is processed. Returning an error
	// stops the game loop.
	Update func() error
}

// ErrQuit can be returned from Config.Update to end Run without an error.
var ErrQuit = errors.New("ebitenbackend: quit")

// Surface is a sketch.Surface backed by Ebitengine. It also implements
// ebiten.Game.
type Surface struct {
	cfg       Config
	commands  []sketch.DrawCommand
	width     int
	height    int
	listeners sketch.Listeners
	tracker   *sketch.PointerTracker
	loader    *Loader
	measurer  *Measurer
	images    imageCache
	closed    bool
	frames    int
}

// New creates a Surface. Nothing is shown until Run is called.
func New(cfg Config) *Surface {
	if cfg.Background == nil {
		cfg.Background = color.White
	}
	return &Surface{
		cfg:      cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		tracker:  sketch.NewPointerTracker(),
		loader:   NewLoader(),
		measurer: NewMeasurer(),
		images:   make(imageCache),
	}
}

// Loader returns the asynchronous image loader bound to this surface's game
// loop. Pass it to sketch.NewImage.
func (s *Surface) Loader() *Loader { return s.loader }

// Measurer returns the text measurer matching this surface's fonts. Pass it
// to sketch.NewLabel.
func (s *Surface) Measurer() *Measurer { return s.measurer }

// Paint implements sketch.Surface. The frame is retained and replayed on
// every Draw until the next Paint.
func (s *Surface) Paint(f *sketch.Frame) error {
	if s.closed {
		return errClosed
	}
	s.commands = append(s.commands[:0], f.Commands...)
	s.width = int(math.Ceil(f.Width * f.Scale))
	s.height = int(math.Ceil(f.Height * f.Scale))
	s.frames++
	return nil
}

// AddEventListener implements sketch.Surface.
func (s *Surface) AddEventListener(kind sketch.EventKind, fn func(sketch.MouseEvent)) sketch.ListenerHandle {
	return s.listeners.Add(kind, fn)
}

// Close implements sketch.Surface. A running game loop exits at the next
// tick.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.listeners.Clear()
	s.images.dispose()
	return nil
}

// Frames returns the number of frames painted so far.
func (s *Surface) Frames() int { return s.frames }

// Run opens the window and blocks until it is closed or Config.Update
// returns an error.
func (s *Surface) Run() error {
	w, h := s.width, s.height
	if w <= 0 || h <= 0 {
		w, h = 640, 480
	}
	ebiten.SetWindowSize(w, h)
	if s.cfg.Title != "" {
		ebiten.SetWindowTitle(s.cfg.Title)
	}
	if s.cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	err := ebiten.RunGame(s)
	if errors.Is(err, ErrQuit) || errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ebitenbackend: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (s *Surface) Update() error {
	if s.closed {
		return ebiten.Termination
	}
	s.loader.drain()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.cfg.ShowFPS = !s.cfg.ShowFPS
	}
	s.pollInput(time.Now())
	if s.cfg.Update != nil {
		if err := s.cfg.Update(); err != nil {
			return err
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (s *Surface) Draw(screen *ebiten.Image) {
	screen.Fill(s.cfg.Background)
	for i := range s.commands {
		s.drawCommand(screen, &s.commands[i])
	}
	if s.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The logical screen always matches the
// window's scaled size so one device pixel maps to one screen pixel.
func (s *Surface) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.width <= 0 || s.height <= 0 {
		return outsideWidth, outsideHeight
	}
	return s.width, s.height
}

// pollInput feeds the mouse state through the pointer tracker. Only one
// button is tracked at a time; left wins over right wins over middle.
func (s *Surface) pollInput(now time.Time) {
	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button sketch.MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, sketch.MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, sketch.MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, sketch.MouseButtonMiddle
	}
	s.tracker.Update(&s.listeners, float64(mx), float64(my), pressed, button, now)
}
