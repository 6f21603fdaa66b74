package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/1broseidon/strutbar"
)

const (
	defaultClockFormat   = "15:04:05"
	alternateClockFormat = "Mon 02 Jan 2006"
	defaultClockInterval = time.Second
	defaultExecInterval  = 5 * time.Second
)

// buildComponent constructs the module described by mc.
func buildComponent(bar *strutbar.Bar, mc ModuleConfig) (strutbar.Component, error) {
	align, err := parseAlign(mc.Align)
	if err != nil {
		return nil, err
	}
	var fg, bg strutbar.Color
	if mc.Foreground != "" {
		if fg, err = strutbar.ParseColor(mc.Foreground); err != nil {
			return nil, err
		}
	}
	if mc.Background != "" {
		if bg, err = strutbar.ParseColor(mc.Background); err != nil {
			return nil, err
		}
	}

	switch mc.Type {
	case "clock":
		format := mc.Format
		if format == "" {
			format = defaultClockFormat
		}
		interval := time.Duration(mc.Interval)
		if interval <= 0 {
			interval = defaultClockInterval
		}
		return &Clock{
			bar:      bar,
			format:   format,
			align:    align,
			width:    mc.width(),
			interval: interval,
			fg:       fg,
			bg:       bg,
		}, nil

	case "label":
		return &Label{
			bar:   bar,
			text:  mc.Text,
			align: align,
			width: mc.width(),
			fg:    fg,
			bg:    bg,
		}, nil

	case "exec":
		interval := time.Duration(mc.Interval)
		if interval <= 0 {
			interval = defaultExecInterval
		}
		return &Exec{
			bar:      bar,
			command:  mc.Command,
			align:    align,
			width:    mc.width(),
			interval: interval,
			fg:       fg,
			bg:       bg,
		}, nil

	case "image":
		data, err := os.ReadFile(mc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		img, err := strutbar.LoadImageScaled(data, bar.Geometry().Height)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mc.Path, err)
		}
		return &Icon{img: img, bg: bg, align: align, width: mc.width()}, nil

	default:
		return nil, fmt.Errorf("unknown module type %q", mc.Type)
	}
}

// Clock shows the current time, re-rendering only when the formatted string
// changes. Clicking it toggles between the time and the date.
type Clock struct {
	bar      *strutbar.Bar
	format   string
	align    strutbar.Alignment
	width    strutbar.Width
	interval time.Duration
	fg       strutbar.Color
	bg       strutbar.Color

	showDate bool
	rendered string
	text     *strutbar.Text
}

func (c *Clock) Update() bool {
	format := c.format
	if c.showDate {
		format = alternateClockFormat
	}
	now := time.Now().Format(format)
	if now == c.rendered && c.text != nil {
		return false
	}
	c.rendered = now
	c.text = strutbar.NewText(c.bar, now, nil, c.fg)
	return true
}

func (c *Clock) Background() (strutbar.Background, error) {
	return strutbar.BackgroundColor(c.bg), nil
}

func (c *Clock) Foreground() (strutbar.Foreground, error) {
	return strutbar.ForegroundText(c.text), nil
}

func (c *Clock) Alignment() strutbar.Alignment { return c.align }
func (c *Clock) Width() strutbar.Width         { return c.width }
func (c *Clock) RedrawInterval() time.Duration { return c.interval }

func (c *Clock) HandleEvent(ev strutbar.Event) {
	click, ok := ev.(strutbar.ClickEvent)
	if !ok || click.Released || click.Button != strutbar.ButtonLeft {
		return
	}
	c.showDate = !c.showDate
	c.bar.Redraw()
}

// Label shows fixed text. The text is rasterized on first render so labels
// can be built off the bar's goroutine.
type Label struct {
	bar   *strutbar.Bar
	text  string
	align strutbar.Alignment
	width strutbar.Width
	fg    strutbar.Color
	bg    strutbar.Color

	rendered *strutbar.Text
}

func (l *Label) Background() (strutbar.Background, error) {
	return strutbar.BackgroundColor(l.bg), nil
}

func (l *Label) Foreground() (strutbar.Foreground, error) {
	if l.rendered == nil {
		l.rendered = strutbar.NewText(l.bar, l.text, nil, l.fg)
	}
	return strutbar.ForegroundText(l.rendered), nil
}

func (l *Label) Alignment() strutbar.Alignment { return l.align }
func (l *Label) Width() strutbar.Width         { return l.width }

// Exec periodically runs a shell command and shows the first line of its
// output. A failing command keeps the previous output on the bar.
type Exec struct {
	bar      *strutbar.Bar
	command  string
	align    strutbar.Alignment
	width    strutbar.Width
	interval time.Duration
	fg       strutbar.Color
	bg       strutbar.Color

	runErr   error
	rendered string
	text     *strutbar.Text
}

func (e *Exec) Update() bool {
	out, err := exec.Command("sh", "-c", e.command).Output()
	if err != nil {
		e.runErr = fmt.Errorf("command failed: %w", err)
		return true
	}
	e.runErr = nil

	line := firstLine(string(out))
	if line == e.rendered && e.text != nil {
		return false
	}
	e.rendered = line
	e.text = strutbar.NewText(e.bar, line, nil, e.fg)
	return true
}

func (e *Exec) Background() (strutbar.Background, error) {
	return strutbar.BackgroundColor(e.bg), nil
}

func (e *Exec) Foreground() (strutbar.Foreground, error) {
	if e.runErr != nil {
		return strutbar.Foreground{}, e.runErr
	}
	return strutbar.ForegroundText(e.text), nil
}

func (e *Exec) Alignment() strutbar.Alignment { return e.align }
func (e *Exec) Width() strutbar.Width         { return e.width }
func (e *Exec) RedrawInterval() time.Duration { return e.interval }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Icon shows a static image, scaled to the bar height when loaded.
type Icon struct {
	img   *strutbar.Surface
	bg    strutbar.Color
	align strutbar.Alignment
	width strutbar.Width
}

func (ic *Icon) Background() (strutbar.Background, error) {
	return strutbar.Background{Color: ic.bg, Image: ic.img}, nil
}

func (ic *Icon) Foreground() (strutbar.Foreground, error) {
	return strutbar.Foreground{}, nil
}

func (ic *Icon) Alignment() strutbar.Alignment { return ic.align }
func (ic *Icon) Width() strutbar.Width         { return ic.width }
