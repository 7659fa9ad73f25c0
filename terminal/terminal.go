// Package terminal draws the globe as characters with tcell.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/smasonuk/particleglobe"
)

// cellAspect is the width/height of a terminal cell.
const cellAspect = 0.5

type App struct {
	screen   tcell.Screen
	session  *particleglobe.Session
	logger   particleglobe.Logger
	canvas   *Canvas
	interval time.Duration
	sprites  []particleglobe.Sprite
}

func NewApp(screen tcell.Screen, session *particleglobe.Session, tps int, logger particleglobe.Logger) *App {
	if logger == nil {
		logger = particleglobe.NewNopLogger()
	}
	return &App{
		screen:   screen,
		session:  session,
		logger:   logger,
		canvas:   NewCanvas(0, 0),
		interval: time.Second / time.Duration(max(tps, 1)),
	}
}

// Start initialises the screen and sizes the pipeline to it.
func (a *App) Start() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.HideCursor()
	a.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	a.session.Pipeline().SetPixelAspect(cellAspect)
	w, h := a.screen.Size()
	a.resize(w, h)
	return nil
}

func (a *App) Stop() {
	a.screen.Fini()
}

// Run drives the globe until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()
	return a.Loop(ctx)
}

// Loop multiplexes input, resize and frame ticks on one goroutine.
func (a *App) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.handle(ev) {
				a.logger.Infof("session %s: quit", a.session.ID)
				return nil
			}
		case <-ticker.C:
			a.draw(a.session.AdvanceFrame())
		}
	}
}

// handle applies one event and reports whether the app should quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return true
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		// aim at the middle of the cell
		a.session.PointerMoved(float64(x)+0.5, float64(y)+0.5)
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
		a.screen.Sync()
	}
	return false
}

func (a *App) resize(w, h int) {
	a.session.Resize(w, h)
	t := a.session.Pipeline().TargetSize()
	a.canvas.Resize(t.Width, t.Height)
}

func (a *App) draw(frame particleglobe.Frame) {
	p := a.session.Pipeline()
	a.sprites = p.Project(frame, a.sprites[:0])

	a.canvas.Clear()
	a.canvas.Plot(a.sprites, p.Material.Color)
	a.canvas.Glow(p.Bloom)

	w, h := a.canvas.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, st := a.canvas.Cell(x, y)
			a.screen.SetContent(x, y, r, nil, st)
		}
	}
	a.screen.Show()
}
