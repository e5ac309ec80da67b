//go:build !linux

package mpris

import (
	"errors"
	"testing"
)

func TestNew_Unsupported(t *testing.T) {
	a, err := New(nil)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("New() error = %v, want ErrUnsupported", err)
	}
	if a != nil {
		t.Error("New() returned an adapter")
	}
}
