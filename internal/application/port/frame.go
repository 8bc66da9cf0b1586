package port

//go:generate mockgen -source=frame.go -destination=mocks/mock_frame_scheduler.go -package=mocks

// FrameScheduler defers work to the next frame of the host event loop.
// Callbacks run on the goroutine that drives the engine.
type FrameScheduler interface {
	Schedule(fn func())
}
