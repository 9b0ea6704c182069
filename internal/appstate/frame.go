package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/theme"
)

const statusHeight = 24

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const maxInitialW, maxInitialH = 1280, 900

var (
	statusFaceOnce sync.Once
	statusFace     font.Face
)

func loadStatusFace() font.Face {
	statusFaceOnce.Do(func() {
		statusFace = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("status font: %v", err)
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Printf("status font: %v", err)
			return
		}
		statusFace = face
	})
	return statusFace
}

// initialSize returns a window size that shows the image at native
// resolution when it fits on a typical screen, and fits it otherwise.
func initialSize(b image.Rectangle) (int, int) {
	if b.Empty() {
		return 640, 480 + statusHeight
	}
	s := geometry.Fit(maxInitialW, maxInitialH, float64(b.Dx()), float64(b.Dy()))
	if b.Dx() <= maxInitialW && b.Dy() <= maxInitialH {
		s = geometry.Size{W: b.Dx(), H: b.Dy()}
	}
	return s.W, s.H + statusHeight
}

// canvasRect is the window area above the status bar.
func canvasRect(winW, winH int) image.Rectangle {
	h := winH - statusHeight
	if h < 0 {
		h = 0
	}
	return image.Rect(0, 0, winW, h)
}

// surfaceRect centres a surface of size s inside the canvas.
func surfaceRect(winW, winH int, s geometry.Size) image.Rectangle {
	c := canvasRect(winW, winH)
	if s.Empty() {
		return image.Rectangle{}
	}
	x0 := c.Min.X + (c.Dx()-s.W)/2
	y0 := c.Min.Y + (c.Dy()-s.H)/2
	return image.Rect(x0, y0, x0+s.W, y0+s.H)
}

// displayRect fits a surface of size s inside the canvas keeping its aspect
// ratio. Unlike surfaceRect the result may be scaled.
func displayRect(winW, winH int, s geometry.Size) image.Rectangle {
	c := canvasRect(winW, winH)
	d := geometry.Fit(float64(c.Dx()), float64(c.Dy()), float64(s.W), float64(s.H))
	return surfaceRect(winW, winH, d)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	l := image.NewUniform(light)
	d := image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			src := l
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 != 0 {
				src = d
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

type paintState struct {
	width, height int
	theme         *theme.Theme
	view          *image.RGBA
	dst           image.Rectangle
	checker       bool
	status        string
	message       string
	messageUntil  time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	composeFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// composeFrame renders one frame into dst.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	if st.view != nil && !st.dst.Empty() {
		op := draw.Src
		if st.checker {
			drawCheckerboard(dst, st.dst, 8, th.CheckerLight, th.CheckerDark)
			op = draw.Over
		}
		if st.dst.Size() == st.view.Bounds().Size() {
			draw.Draw(dst, st.dst, st.view, st.view.Bounds().Min, op)
		} else {
			scaleView(dst, st.dst, st.view, op)
		}
	}
	if ctx.Err() != nil {
		return
	}

	face := loadStatusFace()
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	text := st.status
	if st.message != "" && time.Now().Before(st.messageUntil) {
		text = st.message
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
	m := face.Metrics()
	baseline := bar.Min.Y + (statusHeight-(m.Ascent+m.Descent).Ceil())/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(bar.Min.X+6, baseline)
	d.DrawString(text)
}

func scaleView(dst *image.RGBA, r image.Rectangle, view *image.RGBA, op draw.Op) {
	xdraw.ApproxBiLinear.Scale(dst, r, view, view.Bounds(), op, nil)
}

// cloneRGBA copies img so the frame goroutine never reads a buffer the
// loop is still painting into.
func cloneRGBA(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}
