//go:build !windows

package native

import (
	"fmt"
	"os"
)

// SystemLoader checks that the payload is a readable, non-empty file.
// Platforms other than Windows have no shell-link library to bind.
type SystemLoader struct{}

// NewSystemLoader returns the loader for the running platform.
func NewSystemLoader() *SystemLoader {
	return &SystemLoader{}
}

func (l *SystemLoader) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Size() == 0 {
		return fmt.Errorf("%s is not a loadable library", path)
	}
	return nil
}
