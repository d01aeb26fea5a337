//go:build windows

package native

import (
	"sync"

	"golang.org/x/sys/windows"
)

// SystemLoader loads DLLs with LoadLibrary and keeps them loaded for the
// life of the process.
type SystemLoader struct {
	mu     sync.Mutex
	loaded []*windows.DLL
}

// NewSystemLoader returns the loader for the running platform.
func NewSystemLoader() *SystemLoader {
	return &SystemLoader{}
}

func (l *SystemLoader) Load(path string) error {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.loaded = append(l.loaded, dll)
	l.mu.Unlock()
	return nil
}
