package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
)

// GLFWInputAdapter feeds GLFW callbacks into a recycler.InputState.
//
// Call Update at the start of every frame and EndFrame once every view
// consumed the input.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *recycler.InputState
	// wheel accumulates scroll callbacks between frames.
	wheelX, wheelY float32
}

// NewGLFWInputAdapter installs the key, mouse and scroll callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		input:  recycler.NewInputState(),
	}
	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	return a
}

// Update prepares the input state for a frame lasting dt seconds.
func (a *GLFWInputAdapter) Update(dt float32) *recycler.InputState {
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))
	a.input.SetMouseWheel(a.wheelX, a.wheelY)
	a.wheelX, a.wheelY = 0, 0
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	a.input.UpdateKeyRepeat(dt)
	return a.input
}

// EndFrame clears the per-frame edges.
func (a *GLFWInputAdapter) EndFrame() {
	a.input.Reset()
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *recycler.InputState {
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	if k == recycler.KeyNone {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := glfwMouseButton(button)
	if !ok {
		return
	}
	a.input.SetMouseButton(b, action == glfw.Press)
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.wheelX += float32(xoff)
	a.wheelY += float32(yoff)
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

var glfwKeys = map[glfw.Key]recycler.Key{
	glfw.KeyLeft:     recycler.KeyLeft,
	glfw.KeyRight:    recycler.KeyRight,
	glfw.KeyUp:       recycler.KeyUp,
	glfw.KeyDown:     recycler.KeyDown,
	glfw.KeyPageUp:   recycler.KeyPageUp,
	glfw.KeyPageDown: recycler.KeyPageDown,
	glfw.KeyHome:     recycler.KeyHome,
	glfw.KeyEnd:      recycler.KeyEnd,
	glfw.KeyEscape:   recycler.KeyEscape,
}

func glfwKey(key glfw.Key) recycler.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return recycler.KeyNone
}

func glfwMouseButton(button glfw.MouseButton) (recycler.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return recycler.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return recycler.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return recycler.MouseButtonMiddle, true
	}
	return 0, false
}
