/*
Package x11 implements the X11 Display Adapter backend described in
spec.md §4.9: displays are enumerated via the Xinerama extension, and
pixels are published by drawing onto a pixmap the size of the full virtual
root window, then installing that pixmap as the root window's background
and recording it under the conventional _XROOTPMAP_ID/ESETROOT_PMAP_ID
atoms so other root-pixmap-aware tools (compositors, feh, xsetroot) see a
consistent picture. This is the adapter that supports in-memory apply:
BGRA frames from the optimistic pixel cache are drawn directly, with no
intermediate PNG round trip.
*/
package x11

import (
	"image"
	"image/draw"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/monitor"
)

// Adapter is the X11 display.Adapter implementation.
type Adapter struct{}

// New returns an X11 Adapter.
func New() *Adapter { return &Adapter{} }

// SupportsInMemory implements display.Adapter.
func (*Adapter) SupportsInMemory() bool { return true }

// List implements display.Adapter by querying Xinerama screen geometry.
func (*Adapter) List() ([]monitor.Display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to X server")
	}
	defer conn.Close()

	if err := xinerama.Init(conn); err != nil {
		return nil, errors.Wrap(err, "initializing Xinerama extension")
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil {
		return nil, errors.Wrap(err, "querying Xinerama screens")
	}

	displays := make([]monitor.Display, 0, len(reply.ScreenInfo))
	for i, s := range reply.ScreenInfo {
		displays = append(displays, monitor.Display{
			Width:  int(s.Width),
			Height: int(s.Height),
			Top:    int(s.YOrg),
			Left:   int(s.XOrg),
			Handle: i,
		})
	}
	return displays, nil
}

// Apply implements display.Adapter: it builds one pixmap spanning the
// full virtual root and draws every (path, displays) pair's frame at the
// right offset before installing it, so the desktop never shows a
// partially-updated frame.
func (a *Adapter) Apply(frames map[string][]monitor.Display, read func(string) (image.Image, error)) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return errors.Wrap(err, "connecting to X server")
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	root := screen.Root

	canvas := image.NewNRGBA(image.Rect(0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels)))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)

	for path, targets := range frames {
		img, err := read(path)
		if err != nil {
			return errors.Wrapf(err, "reading final artifact %q", path)
		}
		for _, d := range targets {
			rect := image.Rect(d.Left, d.Top, d.Left+d.Width, d.Top+d.Height)
			draw.Draw(canvas, rect, img, image.Point{}, draw.Src)
		}
	}

	pixmapID, err := xproto.NewPixmapId(conn)
	if err != nil {
		return errors.Wrap(err, "allocating pixmap id")
	}
	if err := xproto.CreatePixmapChecked(conn, screen.RootDepth, pixmapID, xproto.Drawable(root),
		uint16(canvas.Bounds().Dx()), uint16(canvas.Bounds().Dy())).Check(); err != nil {
		return errors.Wrap(err, "creating root pixmap")
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return errors.Wrap(err, "allocating graphics context id")
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(pixmapID), 0, nil).Check(); err != nil {
		return errors.Wrap(err, "creating graphics context")
	}
	defer xproto.FreeGC(conn, gc)

	if err := putImageChunked(conn, pixmapID, gc, canvas); err != nil {
		return errors.Wrap(err, "writing pixmap contents")
	}

	if err := setRootBackground(conn, root, pixmapID); err != nil {
		return errors.Wrap(err, "installing root pixmap")
	}

	// Retain the pixmap after this connection closes; the root window now
	// owns it, matching what feh/xsetroot-style tools do.
	return xproto.SetCloseDownModeChecked(conn, xproto.CloseDownRetainPermanent).Check()
}

// putImageChunked sends canvas's pixels to pixmap in row batches, staying
// under the connection's maximum request length.
func putImageChunked(conn *xgb.Conn, pixmap xproto.Pixmap, gc xproto.Gcontext, canvas *image.NRGBA) error {
	w, h := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}

	const bytesPerPixel = 4
	maxBytes := int(conn.MaximumRequestLength()) * 4
	rowsPerBatch := maxBytes / (w * bytesPerPixel)
	if rowsPerBatch < 1 {
		rowsPerBatch = 1
	}

	for y := 0; y < h; y += rowsPerBatch {
		rows := rowsPerBatch
		if y+rows > h {
			rows = h - y
		}
		data := packBGRX(canvas, y, rows)
		if err := xproto.PutImageChecked(conn, xproto.ImageFormatZPixmap, xproto.Drawable(pixmap), gc,
			uint16(w), uint16(rows), 0, int16(y), 0, 24, data).Check(); err != nil {
			return err
		}
	}
	return nil
}

// packBGRX packs rows [y, y+rows) of canvas into little-endian 32-bit BGRX,
// the pixel layout X servers conventionally expect for TrueColor depth 24.
func packBGRX(canvas *image.NRGBA, y, rows int) []byte {
	w := canvas.Bounds().Dx()
	out := make([]byte, w*rows*4)
	i := 0
	for row := y; row < y+rows; row++ {
		for x := 0; x < w; x++ {
			c := canvas.NRGBAAt(canvas.Bounds().Min.X+x, canvas.Bounds().Min.Y+row)
			out[i+0] = c.B
			out[i+1] = c.G
			out[i+2] = c.R
			out[i+3] = 0
			i += 4
		}
	}
	return out
}

func setRootBackground(conn *xgb.Conn, root xproto.Window, pixmap xproto.Pixmap) error {
	mask := uint32(xproto.CwBackPixmap)
	if err := xproto.ChangeWindowAttributesChecked(conn, root, mask, []uint32{uint32(pixmap)}).Check(); err != nil {
		return err
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if err := xproto.ClearAreaChecked(conn, false, root, 0, 0, screen.WidthInPixels, screen.HeightInPixels).Check(); err != nil {
		return err
	}

	for _, name := range []string{"_XROOTPMAP_ID", "ESETROOT_PMAP_ID"} {
		atomReply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return err
		}
		buf := []byte{
			byte(pixmap), byte(pixmap >> 8), byte(pixmap >> 16), byte(pixmap >> 24),
		}
		if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, root, atomReply.Atom,
			xproto.AtomPixmap, 32, 1, buf).Check(); err != nil {
			return err
		}
	}
	return nil
}
