package native

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/arthur-debert/selfunzip/pkg/logging"
)

// CleanupRegistry tracks temp files that must not outlive the process.
type CleanupRegistry struct {
	mu     sync.Mutex
	paths  map[string]struct{}
	remove func(string) error
}

// NewCleanupRegistry returns an empty registry deleting with os.Remove.
func NewCleanupRegistry() *CleanupRegistry {
	return &CleanupRegistry{paths: make(map[string]struct{}), remove: os.Remove}
}

// ExitCleanup is the process-wide registry run on abnormal termination.
var ExitCleanup = NewCleanupRegistry()

// Add schedules path for deletion.
func (c *CleanupRegistry) Add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path] = struct{}{}
}

// Forget drops path without deleting it.
func (c *CleanupRegistry) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, path)
}

// Pending returns the number of registered paths.
func (c *CleanupRegistry) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

// Run deletes every registered path. Failures are logged, not returned.
func (c *CleanupRegistry) Run() {
	c.mu.Lock()
	paths := c.paths
	c.paths = make(map[string]struct{})
	c.mu.Unlock()

	logger := logging.GetLogger("native.cleanup")
	for path := range paths {
		if err := c.remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to delete temp file")
		}
	}
}

// Interrupts returns a context cancelled by the first SIGINT or SIGTERM,
// which lets a running extraction stop cooperatively. A second signal runs
// the registry and exits with status 130. Call stop to release the handler.
func (c *CleanupRegistry) Interrupts(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigs:
			c.Run()
			os.Exit(130)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
			cancel()
		})
	}
}
