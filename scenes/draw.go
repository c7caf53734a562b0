package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/view"
)

const (
	hudMargin    = 10
	hudLine      = 16
	hudBarWidth  = 130
	hudBarHeight = 13
	screenFill   = 0.94 // share of the screen the arena may cover
)

var (
	colorBackdrop = color.RGBA{12, 12, 16, 255}
	colorFloor    = color.RGBA{38, 36, 44, 255}
	colorObstacle = color.RGBA{96, 92, 104, 255}
	colorShadow   = color.NRGBA{0, 0, 0, 90}
	colorTarget   = color.RGBA{255, 220, 60, 255}
	colorBarBack  = color.RGBA{40, 40, 40, 255}
)

var kindColors = map[netconfig.ActorKind]color.RGBA{
	netconfig.KindPlayer:   {70, 160, 255, 255},
	netconfig.KindSkeleton: {220, 220, 200, 255},
	netconfig.KindMutant:   {120, 200, 80, 255},
	netconfig.KindWizard:   {170, 90, 230, 255},
	netconfig.KindDragon:   {200, 50, 40, 255},
	netconfig.KindFireball: {255, 140, 30, 255},
}

var kindRadius = map[netconfig.ActorKind]float64{
	netconfig.KindPlayer:   0.4,
	netconfig.KindSkeleton: 0.5,
	netconfig.KindMutant:   0.6,
	netconfig.KindWizard:   0.5,
	netconfig.KindDragon:   1.2,
	netconfig.KindFireball: 0.3,
}

var effectColors = map[components.EffectKind]color.RGBA{
	components.EffectHit:           {255, 255, 255, 255},
	components.EffectDeath:         {150, 150, 150, 255},
	components.EffectLanding:       {180, 150, 100, 255},
	components.EffectDashImpact:    {120, 220, 255, 255},
	components.EffectDashTrail:     {70, 160, 255, 255},
	components.EffectWarningMarker: {255, 40, 40, 255},
	components.EffectExplosion:     {255, 120, 20, 255},
	components.EffectFireballHit:   {255, 180, 60, 255},
}

// camera maps arena metres onto the screen, +Y pointing up.
type camera struct {
	scale  float64
	left   float64
	bottom float64
}

func fitCamera(screen *ebiten.Image, f view.Frame) camera {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	if f.Width <= 0 || f.Height <= 0 {
		return camera{scale: 1}
	}
	scale := math.Min(w/f.Width, h/f.Height) * screenFill
	return camera{
		scale:  scale,
		left:   (w - f.Width*scale) / 2,
		bottom: h - (h-f.Height*scale)/2,
	}
}

func (c camera) point(x, y float64) (float32, float32) {
	return float32(c.left + x*c.scale), float32(c.bottom - y*c.scale)
}

func (c camera) length(m float64) float32 { return float32(m * c.scale) }

func drawFrame(screen *ebiten.Image, f view.Frame) {
	screen.Fill(colorBackdrop)
	cam := fitCamera(screen, f)

	x, y := cam.point(0, f.Height)
	vector.DrawFilledRect(screen, x, y, cam.length(f.Width), cam.length(f.Height), colorFloor, false)
	for _, o := range f.Obstacles {
		x, y := cam.point(o.X, o.Y+o.H)
		vector.DrawFilledRect(screen, x, y, cam.length(o.W), cam.length(o.H), colorObstacle, false)
	}

	for _, fx := range f.Effects {
		drawEffect(screen, cam, fx)
	}
	for _, a := range f.Actors {
		drawActor(screen, cam, a)
	}
	if f.Player != nil {
		drawActor(screen, cam, *f.Player)
	}
}

func drawActor(screen *ebiten.Image, cam camera, a view.Actor) {
	r := kindRadius[a.Kind]
	clr := color.NRGBA{R: kindColors[a.Kind].R, G: kindColors[a.Kind].G, B: kindColors[a.Kind].B, A: 255}
	if a.Dead {
		clr.A = uint8(255 * (1 - a.Dissolve) * 0.6)
	}

	gx, gy := cam.point(a.X, a.Y)
	if a.Elevation > 0 {
		vector.DrawFilledCircle(screen, gx, gy, cam.length(r), colorShadow, true)
	}
	// Height is drawn as a lift toward the top of the screen.
	bx, by := cam.point(a.X, a.Y+a.Elevation*0.5)
	vector.DrawFilledCircle(screen, bx, by, cam.length(r), clr, true)

	if a.FacingX != 0 || a.FacingY != 0 {
		fx, fy := cam.point(a.X+a.FacingX*r*1.4, a.Y+a.Elevation*0.5+a.FacingY*r*1.4)
		vector.StrokeLine(screen, bx, by, fx, fy, 2, clr, true)
	}
	if a.Targeted {
		vector.StrokeCircle(screen, gx, gy, cam.length(r+0.3), 2, colorTarget, true)
	}
	if a.Kind != netconfig.KindFireball && !a.Dead {
		drawHealthBar(screen, bx-cam.length(r), by-cam.length(r)-8, cam.length(2*r), 4, a.HealthRatio())
	}
}

func drawEffect(screen *ebiten.Image, cam camera, fx view.Effect) {
	kind := components.EffectKind(fx.Kind)
	base := effectColors[kind]
	clr := color.NRGBA{R: base.R, G: base.G, B: base.B, A: uint8(255 * math.Max(0, math.Min(1, fx.Alpha)))}
	x, y := cam.point(fx.X, fx.Y+fx.Elevation*0.5)
	r := cam.length(0.6 * math.Max(fx.Scale, 0.05))

	switch kind {
	case components.EffectWarningMarker:
		vector.StrokeCircle(screen, x, y, r*2, 3, clr, true)
	case components.EffectDashTrail:
		vector.StrokeCircle(screen, x, y, r, 2, clr, true)
	default:
		vector.DrawFilledCircle(screen, x, y, r*float32(1+fx.Light*0.1), clr, true)
	}
}

func drawHealthBar(screen *ebiten.Image, x, y, w, h float32, ratio float64) {
	vector.DrawFilledRect(screen, x, y, w, h, colorBarBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), h, bandColor(ratio), false)
}

// bandColor follows the health bands: good above 60%, warning above 30%.
func bandColor(ratio float64) color.RGBA {
	switch {
	case ratio > 0.6:
		return color.RGBA{40, 220, 40, 255}
	case ratio > 0.3:
		return color.RGBA{230, 200, 40, 255}
	default:
		return color.RGBA{220, 40, 40, 255}
	}
}

// drawHUD renders the player's health bar and the status lines in the
// top-left corner.
func drawHUD(screen *ebiten.Image, f view.Frame, vol sound.Volumes, extra ...string) {
	y := hudMargin
	if f.Player != nil {
		drawHealthBar(screen, hudMargin, float32(y), hudBarWidth, hudBarHeight, f.Player.HealthRatio())
		y += hudBarHeight + 4
	}
	lines := append(f.Status(), fmt.Sprintf("volume %.0f%%", vol.Master*100))
	lines = append(lines, extra...)
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, hudMargin, y)
		y += hudLine
	}
	ebitenutil.DebugPrintAt(screen, "WASD move  J/K attack  Space dash  Tab target  -/= volume  M mute",
		hudMargin, screen.Bounds().Dy()-hudLine-hudMargin)
}
