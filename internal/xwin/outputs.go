package xwin

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil"
)

// resolveOutput finds the monitor rectangle the bar should span: the RandR
// output with the given name, or the primary output when name is empty.
func resolveOutput(xu *xgbutil.XUtil, name string) (Geometry, error) {
	conn := xu.Conn()
	if err := randr.Init(conn); err != nil {
		return Geometry{}, fmt.Errorf("randr init failed: %w", err)
	}

	root := xu.RootWin()
	resources, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get screen resources: %w", err)
	}

	if name == "" {
		primary, err := randr.GetOutputPrimary(conn, root).Reply()
		if err != nil {
			return Geometry{}, fmt.Errorf("failed to get primary output: %w", err)
		}
		if primary.Output == 0 {
			return Geometry{}, ErrNoPrimaryOutput
		}
		return outputGeometry(xu, primary.Output, resources)
	}

	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if string(info.Name) != name {
			continue
		}
		return outputGeometry(xu, output, resources)
	}

	return Geometry{}, fmt.Errorf("randr output %q: %w", name, ErrOutputNotFound)
}

func outputGeometry(xu *xgbutil.XUtil, output randr.Output, resources *randr.GetScreenResourcesReply) (Geometry, error) {
	conn := xu.Conn()
	info, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get output info: %w", err)
	}
	// An output without a CRTC is connected but disabled
	if info.Crtc == 0 {
		return Geometry{}, fmt.Errorf("randr output %q has no active crtc: %w", string(info.Name), ErrOutputNotFound)
	}

	crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get crtc info: %w", err)
	}

	return Geometry{
		X:      int(crtc.X),
		Y:      int(crtc.Y),
		Width:  int(crtc.Width),
		Height: int(crtc.Height),
	}, nil
}
