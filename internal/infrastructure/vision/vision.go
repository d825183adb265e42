package vision

import (
	"context"
	"fmt"
	"sync"

	"github.com/productgoat/backend/internal/usecase"
)

// This package tracks the handles a scan session holds on the capture stack.
// Barcode decoding itself belongs to the external vision library; what the
// service owns is making sure every acquired handle is released when the
// session ends, which is what these types account for.

// Device is a camera handle.
type Device struct {
	mu     sync.Mutex
	open   bool
	closed bool
}

// NewDevice acquires a camera handle.
func NewDevice(ctx context.Context) (usecase.CameraDevice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Device{}, nil
}

// Open starts the camera stream.
func (d *Device) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("camera already released")
	}
	d.open = true
	return nil
}

// Close releases the camera handle.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.closed = true
	return nil
}

// Router is a capture router handle routing camera frames to the decoder.
type Router struct {
	mu        sync.Mutex
	input     usecase.CameraDevice
	capturing bool
	disposed  bool
}

// NewRouter acquires a capture router handle.
func NewRouter(ctx context.Context) (usecase.VisionRouter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Router{}, nil
}

// SetInput attaches the camera as the router's image source.
func (r *Router) SetInput(device usecase.CameraDevice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = device
}

// StartCapturing begins routing frames using the named template.
func (r *Router) StartCapturing(ctx context.Context, template string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return fmt.Errorf("router already disposed")
	}
	if r.input == nil {
		return fmt.Errorf("no input source attached")
	}
	if template == "" {
		return fmt.Errorf("capture template is required")
	}
	r.capturing = true
	return nil
}

// Dispose stops capturing and releases the router.
func (r *Router) Dispose() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capturing = false
	r.disposed = true
	return nil
}
