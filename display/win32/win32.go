//go:build windows

/*
Package win32 implements the Windows Display Adapter backend described in
spec.md §4.9: wallpapers are set per-monitor through COM activation of the
IDesktopWallpaper interface (CLSID_DesktopWallpaper), the same interface
Explorer itself uses from Windows 8 onward. Unlike the X11 adapter, this
backend is disk-only — SetWallpaper takes a file path, so Apply always
reads its final artifact from disk rather than drawing an in-memory frame.
*/
package win32

import (
	"image"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/wallsync/wallsync/monitor"
)

var (
	clsidDesktopWallpaper = windows.GUID{Data1: 0xC2CF3110, Data2: 0x460E, Data3: 0x4fc1,
		Data4: [8]byte{0xB9, 0xD0, 0x8A, 0x1C, 0x0C, 0x9C, 0xC4, 0xBD}}
	iidDesktopWallpaper = windows.GUID{Data1: 0xB92B56A9, Data2: 0x8B55, Data3: 0x4E14,
		Data4: [8]byte{0x9A, 0x89, 0x01, 0x99, 0xBB, 0xB6, 0xF9, 0x3B}}
)

// vtable method indices below IUnknown's QueryInterface/AddRef/Release.
const (
	methSetWallpaper           = 3
	methGetMonitorDevicePathAt = 5
	methGetMonitorDevicePathCount = 6
	methGetMonitorRECT         = 7
)

type desktopWallpaper struct {
	vtbl *desktopWallpaperVtbl
}

type desktopWallpaperVtbl struct {
	_ [3]uintptr // IUnknown
	_ [13]uintptr
}

func callMethod(obj unsafe.Pointer, index int, args ...uintptr) (uintptr, error) {
	vtbl := *(*[32]uintptr)(unsafe.Pointer(*(*uintptr)(obj)))
	fn := vtbl[index]

	a := append([]uintptr{uintptr(obj)}, args...)
	var r1 uintptr
	var err error
	switch len(a) {
	case 1:
		r1, _, _ = syscall.SyscallN(fn, a[0])
	case 2:
		r1, _, _ = syscall.SyscallN(fn, a[0], a[1])
	case 3:
		r1, _, _ = syscall.SyscallN(fn, a[0], a[1], a[2])
	default:
		r1, _, _ = syscall.SyscallN(fn, a...)
	}
	if int32(r1) < 0 {
		err = errors.Errorf("COM call failed: HRESULT 0x%x", uint32(r1))
	}
	return r1, err
}

// Adapter is the Windows display.Adapter implementation.
type Adapter struct{}

// New returns a Windows Adapter.
func New() *Adapter { return &Adapter{} }

// SupportsInMemory implements display.Adapter: IDesktopWallpaper only
// accepts a file path, so every Apply call reads its final artifact from
// disk.
func (*Adapter) SupportsInMemory() bool { return false }

func (*Adapter) withInstance(fn func(obj unsafe.Pointer) error) error {
	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err != nil {
		return errors.Wrap(err, "CoInitializeEx")
	}
	defer windows.CoUninitialize()

	var obj *desktopWallpaper
	if err := windows.CoCreateInstance(&clsidDesktopWallpaper, nil, windows.CLSCTX_ALL,
		&iidDesktopWallpaper, (**windows.IUnknown)(unsafe.Pointer(&obj))); err != nil {
		return errors.Wrap(err, "CoCreateInstance(CLSID_DesktopWallpaper)")
	}
	defer func() {
		callMethod(unsafe.Pointer(obj), 2) // IUnknown::Release
	}()

	return fn(unsafe.Pointer(obj))
}

// List implements display.Adapter by enumerating IDesktopWallpaper's
// per-monitor device paths and rectangles.
func (a *Adapter) List() ([]monitor.Display, error) {
	var out []monitor.Display
	err := a.withInstance(func(obj unsafe.Pointer) error {
		var count uint32
		if _, err := callMethod(obj, methGetMonitorDevicePathCount, uintptr(unsafe.Pointer(&count))); err != nil {
			return err
		}

		for i := uint32(0); i < count; i++ {
			var monitorPath *uint16
			if _, err := callMethod(obj, methGetMonitorDevicePathAt, uintptr(i), uintptr(unsafe.Pointer(&monitorPath))); err != nil {
				return err
			}
			var rect windows.Rect
			if _, err := callMethod(obj, methGetMonitorRECT, uintptr(unsafe.Pointer(monitorPath)), uintptr(unsafe.Pointer(&rect))); err != nil {
				return err
			}
			out = append(out, monitor.Display{
				Width:  int(rect.Right - rect.Left),
				Height: int(rect.Bottom - rect.Top),
				Left:   int(rect.Left),
				Top:    int(rect.Top),
				Handle: i,
			})
		}
		return nil
	})
	return out, err
}

// Apply implements display.Adapter: every final path is read from disk
// (the read callback) purely to validate it decodes before handing its
// path to SetWallpaper, since IDesktopWallpaper does its own decode.
func (a *Adapter) Apply(frames map[string][]monitor.Display, read func(string) (image.Image, error)) error {
	for path, targets := range frames {
		if _, err := read(path); err != nil {
			return errors.Wrapf(err, "reading final artifact %q", path)
		}
		pathPtr, err := windows.UTF16PtrFromString(path)
		if err != nil {
			return errors.Wrapf(err, "encoding path %q", path)
		}

		err = a.withInstance(func(obj unsafe.Pointer) error {
			for _, d := range targets {
				idx, ok := d.Handle.(uint32)
				if !ok {
					continue
				}
				var monitorPath *uint16
				if _, err := callMethod(obj, methGetMonitorDevicePathAt, uintptr(idx), uintptr(unsafe.Pointer(&monitorPath))); err != nil {
					return err
				}
				if _, err := callMethod(obj, methSetWallpaper, uintptr(unsafe.Pointer(monitorPath)), uintptr(unsafe.Pointer(pathPtr))); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "applying %q", path)
		}
	}
	return nil
}
