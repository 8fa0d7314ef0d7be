package headless

import (
	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

// Surface is an in-memory window with a back buffer render target.
type Surface struct {
	dev          *Device
	swap         *SwapChain
	rect         overlay.Rect
	rectOK       bool
	renderTarget overlay.Handle
}

var _ overlay.Surface = (*Surface)(nil)

// SetWindowRect sets what WindowRect reports. ok=false simulates a window
// whose rectangle cannot be queried, e.g. while minimized.
func (s *Surface) SetWindowRect(r overlay.Rect, ok bool) {
	s.rect = r
	s.rectOK = ok
}

// RenderTarget returns the handle of the back buffer view.
func (s *Surface) RenderTarget() overlay.Handle {
	return s.renderTarget
}

func (s *Surface) WindowRect() (overlay.Rect, bool) {
	return s.rect, s.rectOK
}

func (s *Surface) SetViewport(r overlay.Rect) {
	s.dev.state.Viewport = r
	s.dev.record("viewport")
}

func (s *Surface) SetRenderTarget() {
	s.dev.state.RenderTarget = s.renderTarget
	s.dev.record("render-target")
}

func (s *Surface) SetupDefaultState(dd *gui.DrawData) {
	s.dev.state.Viewport = overlay.Rect{
		Right:  int32(dd.DisplaySize.X),
		Bottom: int32(dd.DisplaySize.Y),
	}
	s.dev.state.RenderTarget = s.renderTarget
	s.dev.record("default-state")
}

func (s *Surface) Device() any                    { return s.dev }
func (s *Surface) Context() overlay.DeviceContext { return s.dev }
func (s *Surface) SwapChain() overlay.SwapChain   { return s.swap }

// SwapChain counts presents and optionally fails them.
type SwapChain struct {
	presents     int
	lastInterval int
	err          error
}

// Present records the call and returns the configured error, if any.
func (c *SwapChain) Present(syncInterval int) error {
	c.lastInterval = syncInterval
	if c.err != nil {
		return c.err
	}
	c.presents++
	return nil
}

// Presents returns the number of successful presents.
func (c *SwapChain) Presents() int { return c.presents }

// LastInterval returns the sync interval of the last Present call.
func (c *SwapChain) LastInterval() int { return c.lastInterval }

// SetError makes subsequent presents fail with err, or succeed when nil.
func (c *SwapChain) SetError(err error) { c.err = err }
