// Package display draws the globe in a desktop window with ebiten.
package display

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/particleglobe"
)

// cursorTracker turns polled cursor positions into move events.
type cursorTracker struct {
	lastX, lastY int
	seen         bool
}

// observe reports whether (x, y) is a move. The first sample only primes the
// tracker so the cloud starts centred.
func (c *cursorTracker) observe(x, y int) bool {
	if !c.seen {
		c.lastX, c.lastY, c.seen = x, y, true
		return false
	}
	if x == c.lastX && y == c.lastY {
		return false
	}
	c.lastX, c.lastY = x, y
	return true
}

type Game struct {
	session *particleglobe.Session
	logger  particleglobe.Logger
	debug   bool

	bloom   *bloomPass
	batcher spriteBatcher
	cursor  cursorTracker

	frame   particleglobe.Frame
	sprites []particleglobe.Sprite
}

func NewGame(session *particleglobe.Session, logger particleglobe.Logger, debug bool) (*Game, error) {
	bloom, err := newBloomPass()
	if err != nil {
		return nil, err
	}
	return &Game{
		session: session,
		logger:  logger,
		debug:   debug,
		bloom:   bloom,
		frame:   session.Frame(),
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if g.cursor.observe(x, y) {
		g.session.PointerMoved(float64(x), float64(y))
	}

	g.frame = g.session.AdvanceFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	p := g.session.Pipeline()
	if g.bloom.ensure(p) {
		t := p.TargetSize()
		g.logger.Debugf("render targets rebuilt at %dx%d with %d bloom mips", t.Width, t.Height, len(p.BloomSizes()))
	}

	g.sprites = p.Project(g.frame, g.sprites[:0])

	g.bloom.scene.Fill(color.Black)
	g.batcher.draw(g.bloom.scene, g.sprites, p.Material.Color)
	g.bloom.apply(screen, p.Bloom)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  points: %d/%d", ebiten.ActualFPS(), len(g.sprites), g.frame.Points.Len()))
	}
}

// Layout resizes the pipeline. Render targets follow on the next Draw.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := g.session.Pipeline().Viewport()
	if vp.Width != outsideWidth || vp.Height != outsideHeight {
		g.session.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func Run(session *particleglobe.Session, cfg particleglobe.Config, logger particleglobe.Logger) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Particle Globe")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	logger.Infof("Initializing window %dx%d...", cfg.Width, cfg.Height)
	g, err := NewGame(session, logger, cfg.Debug)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
