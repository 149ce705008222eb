package renderer

import "github.com/dacdangvan/seotool-sub006/models"

// Preset describes the device a viewport emulates.
type Preset struct {
	Width     int
	Height    int
	DPR       float64
	Touch     bool
	Mobile    bool
	UserAgent string
}

const (
	mobileUA  = "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36"
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var presets = map[models.Viewport]Preset{
	models.ViewportMobile:  {Width: 375, Height: 812, DPR: 3, Touch: true, Mobile: true, UserAgent: mobileUA},
	models.ViewportDesktop: {Width: 1920, Height: 1080, DPR: 1, UserAgent: desktopUA},
}

// PresetFor returns the emulation preset of v, defaulting to mobile.
func PresetFor(v models.Viewport) Preset {
	if p, ok := presets[v]; ok {
		return p
	}
	return presets[models.ViewportMobile]
}
