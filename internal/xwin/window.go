package xwin

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Options configures the X connection and the dock window
type Options struct {
	// Name is used for both WM_NAME and _NET_WM_NAME
	Name   string
	Height int
	// Bottom docks the bar at the bottom edge of the output instead of the top
	Bottom bool
	// Output selects a RandR output by name; empty selects the primary output
	Output string
	// BackPixel is the initial window background as ARGB, shown until the
	// first frame is pushed
	BackPixel uint32
	Logger    *slog.Logger
}

// Window is an X11 dock window the bar renders into. Pixels are pushed into
// a server-side pixmap backed by a BGRA image; windowing events are pumped
// into the Events channel by a dedicated goroutine.
type Window struct {
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	geom   Geometry
	img    *xgraphics.Image
	events chan Event
	logger *slog.Logger
}

// Connect opens an X connection, resolves the target output and maps a dock
// window spanning its width.
func Connect(opts Options) (*Window, error) {
	if opts.Height <= 0 {
		return nil, fmt.Errorf("bar height must be positive, got %d", opts.Height)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	output, err := resolveOutput(xu, opts.Output)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	geom := Geometry{X: output.X, Y: output.Y, Width: output.Width, Height: opts.Height}
	if opts.Bottom {
		geom.Y = output.Y + output.Height - opts.Height
	}

	win, err := createWindow(xu, geom, opts)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	img := xgraphics.New(xu, image.Rect(0, 0, geom.Width, geom.Height))
	if err := img.XSurfaceSet(win.Id); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to attach backing pixmap: %w", err)
	}

	w := &Window{
		xu:     xu,
		win:    win,
		geom:   geom,
		img:    img,
		events: make(chan Event, 64),
		logger: opts.Logger,
	}
	go w.pump()

	w.logger.Info("bar window mapped",
		"output", opts.Output,
		"x", geom.X, "y", geom.Y, "width", geom.Width, "height", geom.Height)
	return w, nil
}

func createWindow(xu *xgbutil.XUtil, geom Geometry, opts Options) (*xwindow.Window, error) {
	win, err := xwindow.Generate(xu)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}
	if err := win.CreateChecked(xu.RootWin(), geom.X, geom.Y, geom.Width, geom.Height,
		xproto.CwBackPixel, opts.BackPixel); err != nil {
		return nil, fmt.Errorf("failed to create bar window: %w", err)
	}
	if err := win.Listen(xproto.EventMaskExposure, xproto.EventMaskButtonPress,
		xproto.EventMaskButtonRelease, xproto.EventMaskPointerMotion,
		xproto.EventMaskStructureNotify); err != nil {
		return nil, fmt.Errorf("failed to select window events: %w", err)
	}

	// Struts are root-relative distances from the screen edge, so a bar on a
	// stacked monitor reserves everything between the edge and itself.
	rootHeight := int(xu.Screen().HeightInPixels)
	strutP := ewmh.WmStrutPartial{}
	strut := ewmh.WmStrut{}
	if opts.Bottom {
		bottom := uint(rootHeight - geom.Y)
		strutP.Bottom = bottom
		strutP.BottomStartX = uint(geom.X)
		strutP.BottomEndX = uint(geom.X + geom.Width)
		strut.Bottom = bottom
	} else {
		top := uint(geom.Y + geom.Height)
		strutP.Top = top
		strutP.TopStartX = uint(geom.X)
		strutP.TopEndX = uint(geom.X + geom.Width)
		strut.Top = top
	}

	if err := ewmh.WmWindowTypeSet(xu, win.Id, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return nil, fmt.Errorf("failed to set dock window type: %w", err)
	}
	if err := ewmh.WmStateSet(xu, win.Id, []string{"_NET_WM_STATE_STICKY"}); err != nil {
		return nil, fmt.Errorf("failed to set sticky state: %w", err)
	}
	if err := ewmh.WmDesktopSet(xu, win.Id, 0xFFFFFFFF); err != nil {
		return nil, fmt.Errorf("failed to set desktop: %w", err)
	}
	if err := ewmh.WmStrutPartialSet(xu, win.Id, &strutP); err != nil {
		return nil, fmt.Errorf("failed to set struts: %w", err)
	}
	if err := ewmh.WmStrutSet(xu, win.Id, &strut); err != nil {
		return nil, fmt.Errorf("failed to set legacy struts: %w", err)
	}
	if err := ewmh.WmNameSet(xu, win.Id, opts.Name); err != nil {
		return nil, fmt.Errorf("failed to set window name: %w", err)
	}
	if err := icccm.WmNameSet(xu, win.Id, opts.Name); err != nil {
		return nil, fmt.Errorf("failed to set legacy window name: %w", err)
	}

	win.Map()
	return win, nil
}

// Geometry returns the window placement established at connect time
func (w *Window) Geometry() Geometry {
	return w.geom
}

// Events returns the stream of windowing events. The channel is closed when
// the X connection goes away.
func (w *Window) Events() <-chan Event {
	return w.events
}

// Push copies img into the backing pixmap and paints it onto the window.
// When dirty rectangles are given only those regions are copied; the whole
// image is copied otherwise. The backing pixmap is reallocated when the
// image size changes.
func (w *Window) Push(img image.Image, dirty []image.Rectangle) error {
	bounds := img.Bounds()
	if w.img.Bounds() != bounds {
		w.img.Destroy()
		w.img = xgraphics.New(w.xu, bounds)
		if err := w.img.XSurfaceSet(w.win.Id); err != nil {
			return fmt.Errorf("failed to attach backing pixmap: %w", err)
		}
		dirty = nil
	}

	if len(dirty) == 0 {
		draw.Draw(w.img, bounds, img, bounds.Min, draw.Src)
	} else {
		for _, r := range dirty {
			r = r.Intersect(bounds)
			if r.Empty() {
				continue
			}
			draw.Draw(w.img, r, img, r.Min, draw.Src)
		}
	}

	w.img.XDraw()
	w.img.XPaint(w.win.Id)
	return nil
}

// Close destroys the window and disconnects from the X server, which also
// terminates the event pump.
func (w *Window) Close() error {
	w.img.Destroy()
	w.win.Destroy()
	w.xu.Conn().Close()
	return nil
}

// pump translates raw X events into transport events. It exits when the
// connection closes, closing the events channel behind it.
func (w *Window) pump() {
	defer close(w.events)
	for {
		ev, xerr := w.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			w.logger.Info("X connection closed")
			return
		}
		if xerr != nil {
			w.logger.Debug("X protocol error", "error", xerr.Error())
			continue
		}

		var out Event
		switch e := ev.(type) {
		case xproto.ExposeEvent:
			// Only the last expose in a series matters
			if e.Count != 0 {
				continue
			}
			out = Expose{}
		case xproto.ButtonPressEvent:
			out = ButtonPress{Button: uint8(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
		case xproto.ButtonReleaseEvent:
			out = ButtonRelease{Button: uint8(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
		case xproto.MotionNotifyEvent:
			out = Motion{X: int(e.EventX), Y: int(e.EventY)}
		case xproto.ConfigureNotifyEvent:
			if e.Window != w.win.Id {
				continue
			}
			out = Configure{Width: int(e.Width), Height: int(e.Height)}
		default:
			continue
		}

		select {
		case w.events <- out:
		default:
			// Consumer is behind; drop rather than stall the connection
			w.logger.Debug("dropping windowing event", "event", fmt.Sprintf("%T", out))
		}
	}
}
