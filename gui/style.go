package gui

// Style defines the visual appearance of UI elements.
type Style struct {
	TextColor         uint32
	TextDisabledColor uint32

	// Panel colors
	PanelColor           uint32
	PanelBorderColor     uint32
	PanelHeaderBgColor   uint32
	PanelHeaderTextColor uint32 // 0 = use TextColor

	// Button colors
	ButtonColor        uint32
	ButtonHoveredColor uint32
	ButtonActiveColor  uint32

	// Input colors
	InputBgColor      uint32
	InputHoveredColor uint32
	InputBorderColor  uint32

	SeparatorColor   uint32
	ProgressBarColor uint32

	// Sizing
	FontScale     float32
	ItemSpacing   float32 // Default gap between items
	PanelPadding  float32
	ButtonPadding float32
	BorderSize    float32
}

// DefaultStyle returns the default style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,

		PanelColor:         RGBA(20, 20, 20, 200),
		PanelBorderColor:   RGBA(80, 80, 80, 255),
		PanelHeaderBgColor: RGBA(40, 40, 45, 255),

		ButtonColor:        RGBA(50, 50, 50, 255),
		ButtonHoveredColor: RGBA(70, 70, 70, 255),
		ButtonActiveColor:  RGBA(90, 90, 90, 255),

		InputBgColor:      RGBA(30, 30, 30, 255),
		InputHoveredColor: RGBA(40, 40, 50, 255),
		InputBorderColor:  RGBA(100, 100, 100, 255),

		SeparatorColor:   RGBA(80, 80, 80, 255),
		ProgressBarColor: RGBA(50, 100, 150, 255),

		FontScale:     1.0,
		ItemSpacing:   4,
		PanelPadding:  8,
		ButtonPadding: 6,
		BorderSize:    1,
	}
}

// GTAStyle returns a GTA San Andreas-inspired style.
// Dark theme with cyan/yellow accents reminiscent of the game's menus.
func GTAStyle() Style {
	s := DefaultStyle()
	s.TextDisabledColor = RGBA(128, 128, 128, 255)
	s.PanelColor = RGBA(0, 0, 0, 220)
	s.PanelBorderColor = RGBA(100, 100, 100, 255)
	s.PanelHeaderBgColor = RGBA(0, 60, 90, 255)     // cyan tinted
	s.PanelHeaderTextColor = RGBA(255, 200, 0, 255) // GTA yellow
	s.ButtonColor = RGBA(40, 40, 40, 255)
	s.ButtonHoveredColor = RGBA(60, 80, 100, 255)
	s.ButtonActiveColor = RGBA(0, 150, 200, 255)
	s.ProgressBarColor = RGBA(0, 150, 200, 255)
	s.BorderSize = 2
	return s
}
