package recycler

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorCyan        uint32 = 0xFFFFFF00
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorLightGray   uint32 = 0xFFC0C0C0
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Style defines how a scroll view is drawn.
type Style struct {
	TextColor uint32

	// Viewport
	BackgroundColor uint32
	BorderColor     uint32

	// Cells
	CellColor        uint32
	CellAltColor     uint32 // odd data indices
	CellBorderColor  uint32
	CellPadding      float32
	ShowCellIndex    bool
	ShowRecycleCount bool // append how often the cell was bound

	// Scrollbar
	ScrollbarBgColor   uint32
	ScrollbarGrabColor uint32
	ScrollbarSize      float32
	ScrollbarMinGrab   float32

	// Font
	FontScale  float32
	CharWidth  float32
	CharHeight float32

	BorderSize float32
}

// DefaultStyle returns the default style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		TextColor: ColorWhite,

		BackgroundColor: RGBA(20, 20, 20, 230),
		BorderColor:     RGBA(80, 80, 80, 255),

		CellColor:       RGBA(45, 45, 50, 255),
		CellAltColor:    RGBA(35, 35, 40, 255),
		CellBorderColor: RGBA(70, 70, 80, 255),
		CellPadding:     6,
		ShowCellIndex:   true,

		ScrollbarBgColor:   RGBA(30, 30, 30, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),
		ScrollbarSize:      8,
		ScrollbarMinGrab:   16,

		FontScale:  1.0,
		CharWidth:  8,
		CharHeight: 8,

		BorderSize: 1,
	}
}
