//go:build windows

package main

import (
	"github.com/wallsync/wallsync/display"
	"github.com/wallsync/wallsync/display/win32"
)

func newPlatformAdapter() display.Adapter {
	return win32.New()
}
