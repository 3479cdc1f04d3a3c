//go:build !windows

package main

import (
	"github.com/wallsync/wallsync/display"
	"github.com/wallsync/wallsync/display/x11"
)

func newPlatformAdapter() display.Adapter {
	return x11.New()
}
