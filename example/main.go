// Example shows a recycling grid of 10,000 contacts in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The grid is built one cell per frame through a Scheduler ticked by the
// Host, so the window stays responsive while the pool fills. Scroll with
// the wheel, drag, arrows or PageUp/PageDown. Set RECYCLER_DEBUG=1 to log
// the build steps.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "recycler example"
	margin       = 20
	contactCount = 10000
	columns      = 3
)

type contact struct {
	Name  string
	Phone string
}

var firstNames = []string{"Ada", "Alan", "Grace", "Linus", "Ken", "Rob", "Barbara", "Edsger", "Donald", "Margaret"}

func contacts(n int) []contact {
	out := make([]contact, n)
	for i := range out {
		out[i] = contact{
			Name:  fmt.Sprintf("%s %d", firstNames[i%len(firstNames)], i),
			Phone: fmt.Sprintf("555-%04d", i%10000),
		}
	}
	return out
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// viewportFor places the viewport inside the window with a margin on every
// side. World space is y-up with the origin at the bottom-left.
func viewportFor(vp *recycler.Transform, w, h int) {
	vp.SizeDelta = recycler.Vec2{X: float32(w - 2*margin), Y: float32(h - 2*margin)}
	vp.AnchoredPosition = recycler.Vec2{X: margin, Y: margin}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()
	input := opengl.NewGLFWInputAdapter(window)

	sched := recycler.NewScheduler()
	host := recycler.NewHost(renderer, recycler.WithHostScheduler(sched))

	r, err := recycler.New(recycler.NewBasicPool(),
		recycler.WithGrid(columns),
		recycler.WithMinPoolCoverage(1.5),
		recycler.WithScheduler(sched))
	if err != nil {
		return err
	}
	r.OnFailed.Subscribe(func(err error) {
		fmt.Fprintln(os.Stderr, "build failed:", err)
	})

	viewport := recycler.NewTransform("viewport", recycler.Vec2{})
	fbw, fbh := window.GetFramebufferSize()
	viewportFor(viewport, fbw, fbh)
	prototype := recycler.NewTransform("contact", recycler.Vec2{X: 240, Y: 56})

	view := recycler.NewScrollView("contacts", viewport, prototype, r)
	view.Focused = true
	view.OnValueChanged.Subscribe(func(pos float32) {
		window.SetTitle(fmt.Sprintf("%s - %.0f%%", windowTitle, pos*100))
	})
	host.Add(view)

	source := recycler.NewSliceSource(contacts(contactCount), func(c contact) []string {
		return []string{c.Name, c.Phone}
	})
	if err := view.Initialize(source); err != nil {
		return err
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		host.Resize(w, h)
		viewportFor(viewport, w, h)
		if err := view.Resize(viewport.SizeDelta); err != nil {
			fmt.Fprintln(os.Stderr, "resize:", err)
		}
	})

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		host.Begin(input.Update(dt), recycler.Vec2{X: float32(w), Y: float32(h)}, dt)
		if err := host.End(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		input.EndFrame()

		window.SwapBuffers()
	}

	return nil
}
