package viewer

import "github.com/veandco/go-sdl2/sdl"

type action int

const (
	actionNone action = iota
	actionQuit
	actionWireframe
	actionNormals
	actionTangents
	actionTexCoords
	actionReload
	actionFrame
	actionBounds
	actionScreenshot
)

// keyAction maps a pressed key to a viewer action.
func keyAction(key sdl.Scancode) action {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return actionQuit
	case sdl.SCANCODE_W:
		return actionWireframe
	case sdl.SCANCODE_N:
		return actionNormals
	case sdl.SCANCODE_T:
		return actionTangents
	case sdl.SCANCODE_U:
		return actionTexCoords
	case sdl.SCANCODE_R:
		return actionReload
	case sdl.SCANCODE_F:
		return actionFrame
	case sdl.SCANCODE_B:
		return actionBounds
	case sdl.SCANCODE_P:
		return actionScreenshot
	}
	return actionNone
}
