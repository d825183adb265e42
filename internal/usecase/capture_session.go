package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/productgoat/backend/internal/domain"
	"github.com/productgoat/backend/internal/infrastructure/session"
	"go.uber.org/zap"
)

// CameraDevice is a camera handle acquired for a scan session.
type CameraDevice interface {
	Open(ctx context.Context) error
	Close() error
}

// VisionRouter routes camera frames through the external barcode decoder.
type VisionRouter interface {
	SetInput(device CameraDevice)
	StartCapturing(ctx context.Context, template string) error
	Dispose() error
}

// CameraFactory and RouterFactory construct the capture resources. The
// concrete devices belong to the external vision library; this package only
// manages their lifecycle.
type (
	CameraFactory func(ctx context.Context) (CameraDevice, error)
	RouterFactory func(ctx context.Context) (VisionRouter, error)
)

// captureTemplate selects single-barcode reading on the vision router.
const captureTemplate = "ReadSingleBarcode"

// CaptureSession owns the camera and vision router for one live scan.
//
// Initialization is a staged asynchronous sequence; after every suspension
// point it checks whether the session was destroyed and aborts cleanly if
// teardown happened mid-initialization. Close marks the session destroyed,
// waits for in-flight initialization to settle, then releases the router and
// camera exactly once, so neither handle can leak regardless of how Close
// races Open.
type CaptureSession struct {
	ID string

	mu        sync.Mutex
	destroyed bool
	camera    CameraDevice
	router    VisionRouter
	initErr   error

	initDone chan struct{}
	release  sync.Once

	log *zap.SugaredLogger
}

func newCaptureSession(log *zap.SugaredLogger) *CaptureSession {
	return &CaptureSession{
		ID:       uuid.NewString(),
		initDone: make(chan struct{}),
		log:      log,
	}
}

// open runs the initialization sequence: create camera, open it, create the
// vision router, attach the camera as its input, start capturing.
func (s *CaptureSession) open(ctx context.Context, cameras CameraFactory, routers RouterFactory) error {
	err := s.initialize(ctx, cameras, routers)

	s.mu.Lock()
	s.initErr = err
	s.mu.Unlock()
	close(s.initDone)

	if err != nil && !errors.Is(err, domain.ErrSessionDestroyed) {
		// Genuine init failure: nobody is going to scan with this session,
		// release whatever was acquired.
		s.Close()
	}
	return err
}

func (s *CaptureSession) initialize(ctx context.Context, cameras CameraFactory, routers RouterFactory) error {
	camera, err := cameras(ctx)
	if err != nil {
		return fmt.Errorf("create camera: %w", err)
	}
	if s.adopt(camera, nil) {
		return domain.ErrSessionDestroyed
	}

	if err := camera.Open(ctx); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	if s.adopt(nil, nil) {
		return domain.ErrSessionDestroyed
	}

	router, err := routers(ctx)
	if err != nil {
		return fmt.Errorf("create vision router: %w", err)
	}
	if s.adopt(nil, router) {
		return domain.ErrSessionDestroyed
	}

	router.SetInput(camera)

	if err := router.StartCapturing(ctx, captureTemplate); err != nil {
		return fmt.Errorf("start capturing: %w", err)
	}
	if s.adopt(nil, nil) {
		return domain.ErrSessionDestroyed
	}

	s.log.Debugw("capture session initialized", "session", s.ID)
	return nil
}

// adopt records newly acquired resources and reports whether the session was
// destroyed in the meantime. This is the destroyed-flag check performed after
// every suspension point; resources recorded here are released by Close.
func (s *CaptureSession) adopt(camera CameraDevice, router VisionRouter) (destroyed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if camera != nil {
		s.camera = camera
	}
	if router != nil {
		s.router = router
	}
	return s.destroyed
}

// Close tears the session down: mark destroyed, wait for in-flight
// initialization to complete, then release the vision router and the camera
// deterministically. Safe to call more than once.
func (s *CaptureSession) Close() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()

	<-s.initDone

	s.release.Do(func() {
		s.mu.Lock()
		camera, router := s.camera, s.router
		s.mu.Unlock()

		if router != nil {
			if err := router.Dispose(); err != nil {
				s.log.Warnw("vision router dispose failed", "session", s.ID, "error", err)
			}
		}
		if camera != nil {
			if err := camera.Close(); err != nil {
				s.log.Warnw("camera close failed", "session", s.ID, "error", err)
			}
		}
		s.log.Debugw("capture session released", "session", s.ID)
	})
}

// Err reports the initialization outcome once it has settled.
func (s *CaptureSession) Err() error {
	select {
	case <-s.initDone:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.initErr
	default:
		return nil
	}
}

const captureKeyPrefix = "scan:"

// CaptureService manages live scan sessions.
type CaptureService struct {
	cameras  CameraFactory
	routers  RouterFactory
	sessions *session.Store
	log      *zap.SugaredLogger
}

// NewCaptureService creates the scan session manager.
func NewCaptureService(cameras CameraFactory, routers RouterFactory, sessions *session.Store, log *zap.SugaredLogger) *CaptureService {
	return &CaptureService{
		cameras:  cameras,
		routers:  routers,
		sessions: sessions,
		log:      log,
	}
}

// Start registers a new capture session and kicks off its initialization
// sequence in the background.
func (s *CaptureService) Start(ctx context.Context) *CaptureSession {
	sess := newCaptureSession(s.log)
	s.sessions.Set(captureKeyPrefix+sess.ID, sess)

	go func() {
		if err := sess.open(context.WithoutCancel(ctx), s.cameras, s.routers); err != nil {
			if errors.Is(err, domain.ErrSessionDestroyed) {
				s.log.Debugw("capture session destroyed during init", "session", sess.ID)
			} else {
				s.log.Warnw("capture session init failed", "session", sess.ID, "error", err)
			}
		}
	}()

	return sess
}

// Stop tears down a capture session and removes it from the registry.
func (s *CaptureService) Stop(id string) error {
	value, ok := s.sessions.Get(captureKeyPrefix + id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess := value.(*CaptureSession)
	sess.Close()
	s.sessions.Delete(captureKeyPrefix + id)
	return nil
}
