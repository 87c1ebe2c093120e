package scene

import (
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
)

// CamAction is a camera control bound through the input layer.
type CamAction int

const (
	CamUp CamAction = iota
	CamDown
	CamLeft
	CamRight
	CamRotateLeft
	CamRotateRight
	CamZoomIn
	CamZoomOut
	camActionCount
)

var camActionNames = [...]string{"up", "down", "left", "right", "rotate-left", "rotate-right", "zoom-in", "zoom-out"}

func (a CamAction) String() string {
	if a < 0 || a >= camActionCount {
		return "cam?"
	}
	return camActionNames[a]
}

// DefaultCamBindings maps WASD to movement, Q/E to rotation and Z/X to zoom.
func DefaultCamBindings() *input.Bindings[CamAction] {
	return input.NewBindings[CamAction]().
		Bind(CamUp, input.KeyCombo(core.KeyW, 0), input.KeyCombo(core.KeyUp, 0)).
		Bind(CamDown, input.KeyCombo(core.KeyS, 0), input.KeyCombo(core.KeyDown, 0)).
		Bind(CamLeft, input.KeyCombo(core.KeyA, 0), input.KeyCombo(core.KeyLeft, 0)).
		Bind(CamRight, input.KeyCombo(core.KeyD, 0), input.KeyCombo(core.KeyRight, 0)).
		Bind(CamRotateLeft, input.KeyCombo(core.KeyQ, 0)).
		Bind(CamRotateRight, input.KeyCombo(core.KeyE, 0)).
		Bind(CamZoomIn, input.KeyCombo(core.KeyZ, 0)).
		Bind(CamZoomOut, input.KeyCombo(core.KeyX, 0))
}

// OrthoController2D moves a camera from held camera actions and zooms it
// with the mouse wheel.
type OrthoController2D struct {
	MoveSpeed float32 // world units per second at zoom 1
	RotSpeed  float32 // radians per second
	ZoomSpeed float32 // zoom factor per wheel notch or second held
	Camera    *OrthoCamera2D

	held [camActionCount]bool
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 200,
		RotSpeed:  2.0,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

// Handle applies one input event. It reports whether the event was used.
func (cc *OrthoController2D) Handle(ev input.Event[CamAction]) bool {
	switch ev.Kind {
	case input.KindActionPressed, input.KindActionReleased:
		if ev.Action < 0 || ev.Action >= camActionCount {
			return false
		}
		cc.held[ev.Action] = ev.Kind == input.KindActionPressed
		return true
	case input.KindMouseWheelMoved:
		if ev.Wheel[1] == 0 {
			return false
		}
		z := cc.Camera.Zoom
		if ev.Wheel[1] > 0 {
			z *= cc.ZoomSpeed
		} else {
			z /= cc.ZoomSpeed
		}
		cc.Camera.SetZoom(z)
		return true
	case input.KindWindowFocus:
		if !ev.Focus {
			cc.held = [camActionCount]bool{}
		}
	}
	return false
}

// Held reports whether a is currently held.
func (cc *OrthoController2D) Held(a CamAction) bool {
	return a >= 0 && a < camActionCount && cc.held[a]
}

func (cc *OrthoController2D) Update(dt float32) {
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom
	up := speed
	if cc.Camera.YDown {
		up = -speed
	}

	if cc.held[CamUp] {
		cc.Camera.Move(0, up)
	}
	if cc.held[CamDown] {
		cc.Camera.Move(0, -up)
	}
	if cc.held[CamLeft] {
		cc.Camera.Move(-speed, 0)
	}
	if cc.held[CamRight] {
		cc.Camera.Move(speed, 0)
	}
	if cc.held[CamRotateLeft] {
		cc.Camera.Rotate(cc.RotSpeed * dt)
	}
	if cc.held[CamRotateRight] {
		cc.Camera.Rotate(-cc.RotSpeed * dt)
	}
	if cc.held[CamZoomIn] != cc.held[CamZoomOut] {
		f := 1 + (cc.ZoomSpeed-1)*dt
		if cc.held[CamZoomIn] {
			cc.Camera.SetZoom(cc.Camera.Zoom * f)
		} else {
			cc.Camera.SetZoom(cc.Camera.Zoom / f)
		}
	}
}
