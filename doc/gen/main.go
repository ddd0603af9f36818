// Command gen renders recycling scroll views in their common layouts,
// captures framebuffer pixels and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot describes one captured layout.
type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	opts   []recycler.Option
	cell   recycler.Vec2 // prototype size
	items  int
	scroll float32 // logical offset applied before capture
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := []screenshot{
		{name: "list", width: 320, height: 400, cell: recycler.Vec2{X: 300, Y: 40}, items: 1000},
		{name: "list_scrolled", width: 320, height: 400, cell: recycler.Vec2{X: 300, Y: 40}, items: 1000, scroll: 4321},
		{name: "grid", width: 480, height: 400, opts: []recycler.Option{recycler.WithGrid(3)},
			cell: recycler.Vec2{X: 150, Y: 80}, items: 1000, scroll: 250},
		{name: "horizontal", width: 600, height: 120, opts: []recycler.Option{recycler.WithOrientation(recycler.Horizontal)},
			cell: recycler.Vec2{X: 110, Y: 100}, items: 200, scroll: 990},
		{name: "horizontal_grid", width: 600, height: 240,
			opts: []recycler.Option{recycler.WithOrientation(recycler.Horizontal), recycler.WithGrid(2)},
			cell: recycler.Vec2{X: 140, Y: 100}, items: 200, scroll: 500},
	}

	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection: the hidden window stays at
	// 800x600, larger than every screenshot.
	renderer.Resize(s.width, s.height)

	r, err := recycler.New(recycler.NewBasicPool(), s.opts...)
	if err != nil {
		return err
	}
	viewport := recycler.NewTransform("viewport", recycler.Vec2{X: float32(s.width), Y: float32(s.height)})
	view := recycler.NewScrollView(s.name, viewport, recycler.NewTransform("cell", s.cell), r)
	source := recycler.NewSliceSource(make([]struct{}, s.items), func(struct{}) []string { return nil })
	if err := view.Initialize(source); err != nil {
		return err
	}
	view.SetScroll(s.scroll)

	style := recycler.DefaultStyle()
	style.ShowRecycleCount = true
	host := recycler.NewHost(renderer, recycler.WithStyle(style))
	host.Add(view)

	for range 2 {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		host.Begin(recycler.NewInputState(), recycler.Vec2{X: float32(s.width), Y: float32(s.height)}, 1.0/60.0)
		if err := host.End(); err != nil {
			return err
		}
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	flipRows(pixels, s.width*4, s.height)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode %s: %w", strconv.Quote(path), err)
	}
	return nil
}

// flipRows reverses the row order in place; GL reads bottom row first.
func flipRows(pixels []byte, rowLen, rows int) {
	tmp := make([]byte, rowLen)
	for y := 0; y < rows/2; y++ {
		top := y * rowLen
		bot := (rows - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
}
