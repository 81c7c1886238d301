// Package appstate is the application controller: it owns the current
// screen, the captured image and its annotations, and turns per-tick input
// into actions. Window hosts the controller in a shiny window.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/shortcut"
	"github.com/example/snapmark/internal/theme"
	"github.com/example/snapmark/internal/timer"
)

// StatusDuration is how long a status message stays visible.
const StatusDuration = 2 * time.Second

// Capturer grabs screen pixels.
type Capturer interface {
	Fullscreen(ctx context.Context) (*image.RGBA, error)
	Region(ctx context.Context, rect image.Rectangle) (*image.RGBA, error)
}

// Clipboard receives copied images.
type Clipboard interface {
	WriteImage(img image.Image) error
}

// Saver persists images.
type Saver interface {
	Save(path string, img image.Image) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(path string, img image.Image) error

// Save calls f.
func (f SaverFunc) Save(path string, img image.Image) error { return f(path, img) }

// PathPicker chooses where to save. ok is false when the user cancels.
type PathPicker interface {
	PickSavePath(suggested string) (path string, ok bool, err error)
}

// Namer suggests file names.
type Namer interface {
	Next() string
}

// Notifier is told about finished operations.
type Notifier interface {
	Capture(detail string, img image.Image)
	Save(path string)
	Copy(detail string)
}

var (
	errNoImage    = errors.New("no screenshot to work with")
	errNoCapturer = errors.New("screen capture is not available")
	errNoSaver    = errors.New("saving is not configured")
	errNoClip     = errors.New("clipboard is not available")
)

// Controller is the application state machine. It is driven from a single
// goroutine and is not safe for concurrent use.
type Controller struct {
	mode      Mode
	prevMode  Mode
	selection Selection
	closed    bool

	image *image.RGBA
	model *annotate.Model
	style annotate.Style

	registry *shortcut.Registry
	editor   *shortcut.Editor
	timer    *timer.Timer
	clock    clock.Clock

	capturer  Capturer
	clipboard Clipboard
	saver     Saver
	picker    PathPicker
	namer     Namer
	notifier  Notifier

	shadow     bool
	shadowOpts render.ShadowOptions
	onSaved    func([]shortcut.Binding) error

	area       areaState
	settings   settingsState
	textPos    image.Point
	textPlaced bool
	pressed    bool

	status      string
	statusUntil time.Time

	theme *theme.Theme
	log   *logrus.Entry
}

type areaState struct {
	backdrop *image.RGBA
	anchor   image.Point
	rect     image.Rectangle
	dragging bool
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithRegistry sets the live shortcut table.
func WithRegistry(r *shortcut.Registry) Option { return func(c *Controller) { c.registry = r } }

// WithClock sets the clock used for status messages and the timer.
func WithClock(clk clock.Clock) Option { return func(c *Controller) { c.clock = clk } }

// WithTimer sets the countdown used for delayed captures.
func WithTimer(t *timer.Timer) Option { return func(c *Controller) { c.timer = t } }

// WithCapturer sets the screen capture provider.
func WithCapturer(p Capturer) Option { return func(c *Controller) { c.capturer = p } }

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clipboard = cb } }

// WithSaver sets how Save writes files.
func WithSaver(s Saver) Option { return func(c *Controller) { c.saver = s } }

// WithPathPicker sets how Save chooses a path.
func WithPathPicker(p PathPicker) Option { return func(c *Controller) { c.picker = p } }

// WithNamer sets the file name suggestions.
func WithNamer(n Namer) Option { return func(c *Controller) { c.namer = n } }

// WithNotifier sets the notifier for captures, saves and copies.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithImage starts the controller in the viewer with img.
func WithImage(img *image.RGBA) Option {
	return func(c *Controller) {
		c.image = img
		c.mode = ModeViewing
	}
}

// WithSelection sets the initial capture selection.
func WithSelection(s Selection) Option { return func(c *Controller) { c.selection = s } }

// WithStyle sets the initial annotation style.
func WithStyle(s annotate.Style) Option { return func(c *Controller) { c.style = s } }

// WithShadow adds a drop shadow to copied and saved images.
func WithShadow(enabled bool, opts render.ShadowOptions) Option {
	return func(c *Controller) {
		c.shadow = enabled
		c.shadowOpts = opts
	}
}

// WithShortcutsSaved registers a callback run after the shortcut table is
// committed from the settings screen, typically to persist it.
func WithShortcutsSaved(fn func([]shortcut.Binding) error) Option {
	return func(c *Controller) { c.onSaved = fn }
}

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(c *Controller) { c.theme = t } }

// WithLogger sets the log entry.
func WithLogger(l *logrus.Entry) Option { return func(c *Controller) { c.log = l } }

// New creates a Controller on the Home screen with the default shortcuts.
func New(opts ...Option) *Controller {
	c := &Controller{
		model: annotate.New(),
		style: annotate.DefaultStyle,
		clock: clock.New(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.registry == nil {
		c.registry = shortcut.Default()
	}
	if c.timer == nil {
		c.timer = timer.New(timer.WithClock(c.clock))
	}
	if c.theme == nil {
		c.theme = theme.Default()
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "appstate")
	}
	c.editor = shortcut.NewEditor(c.registry)
	c.model.SetStyle(c.style)
	return c
}

// Mode returns the current screen.
func (c *Controller) Mode() Mode { return c.mode }

// Selection returns the capture selection.
func (c *Controller) Selection() Selection { return c.selection }

// Closed reports whether Close was performed.
func (c *Controller) Closed() bool { return c.closed }

// Image returns the image being viewed, or nil.
func (c *Controller) Image() *image.RGBA { return c.image }

// Model returns the annotation model.
func (c *Controller) Model() *annotate.Model { return c.model }

// Registry returns the live shortcut table.
func (c *Controller) Registry() *shortcut.Registry { return c.registry }

// Editor returns the shortcut editor.
func (c *Controller) Editor() *shortcut.Editor { return c.editor }

// Timer returns the countdown.
func (c *Controller) Timer() *timer.Timer { return c.timer }

// Style returns the style new marks are drawn with.
func (c *Controller) Style() annotate.Style { return c.style }

// Viewing reports whether an image is on screen.
func (c *Controller) Viewing() bool { return c.mode == ModeViewing && c.image != nil }

// Status returns the current status message, if it has not expired.
func (c *Controller) Status() (string, bool) {
	if c.status == "" || !c.clock.Now().Before(c.statusUntil) {
		return "", false
	}
	return c.status, true
}

// DismissStatus hides the status message.
func (c *Controller) DismissStatus() { c.statusUntil = time.Time{} }

func (c *Controller) setStatus(format string, args ...interface{}) {
	c.status = fmt.Sprintf(format, args...)
	c.statusUntil = c.clock.Now().Add(StatusDuration)
}

// fail records err as the status message and returns it wrapped with the
// action that caused it.
func (c *Controller) fail(a action.Action, err error) error {
	c.setStatus("%s failed: %v", a, err)
	c.log.WithError(err).WithField("action", a).Warn("action failed")
	return fmt.Errorf("%s: %w", a, err)
}

// Tick advances the controller by one frame: the timer is polled first,
// then shortcuts are dispatched, then the input specific to the current
// mode is handled.
func (c *Controller) Tick(ctx context.Context, f Frame) error {
	if f.Keys == nil {
		f.Keys = noKeys{}
	}
	var result *multierror.Error
	if c.timer.Poll() {
		c.log.Info("timer expired")
		if c.mode == ModeTimerRunning {
			c.mode = ModeHome
		}
		if err := c.Perform(ctx, action.Capture); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if !c.settings.rebinding {
		if a, ok := c.registry.Listener(f.Keys, c.Viewing(), c.mode.modal()); ok {
			if err := c.Perform(ctx, a); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	if err := c.handleInput(ctx, f); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Perform runs a. Failures of external collaborators leave the state as it
// was, set a status message and are returned wrapped.
func (c *Controller) Perform(ctx context.Context, a action.Action) error {
	c.log.WithField("action", a).WithField("mode", c.mode).Debug("perform")
	switch a {
	case action.None:
		return nil
	case action.Capture:
		return c.capture(ctx)
	case action.Copy:
		return c.copy()
	case action.Save:
		return c.save()
	case action.Modify:
		c.modify()
	case action.Undo:
		if c.Viewing() {
			c.model.Undo()
		}
	case action.NewScreenshot:
		return c.newScreenshot(ctx)
	case action.HomePage:
		c.discard()
		c.mode = ModeHome
	case action.SelectArea:
		c.selection = SelectionArea
		return c.selectArea(ctx)
	case action.SelectFullscreen:
		c.selection = SelectionFullscreen
		if c.mode == ModeSelectingArea {
			c.leaveArea()
		}
	case action.ManageTimer:
		if c.mode == ModeHome {
			c.timer.OpenForm()
			c.mode = ModeTimerForm
		}
	case action.SetTimer:
		c.timer.CloseForm()
		if c.mode == ModeTimerForm {
			c.mode = ModeHome
		}
	case action.StartTimer:
		if c.mode == ModeHome || c.mode == ModeTimerForm {
			c.timer.Start()
			c.mode = ModeTimerRunning
			c.log.WithField("seconds", c.timer.Seconds()).Info("timer started")
		}
	case action.ResetTimer:
		c.timer.Reset()
		if c.mode == ModeTimerRunning || c.mode == ModeTimerForm {
			c.mode = ModeHome
		}
	case action.Settings:
		c.toggleSettings()
	case action.Close:
		c.closed = true
	default:
		return fmt.Errorf("unknown action %d", int(a))
	}
	return nil
}

// SelectTool activates t while annotating.
func (c *Controller) SelectTool(t annotate.Tool) {
	if !c.model.InSession() {
		return
	}
	c.model.SetTool(t)
}

// SetStyle changes the style for new marks.
func (c *Controller) SetStyle(s annotate.Style) {
	if s.Width < 1 {
		s.Width = 1
	}
	c.style = s
	c.model.SetStyle(s)
}

func (c *Controller) capture(ctx context.Context) error {
	if c.capturer == nil {
		return c.fail(action.Capture, errNoCapturer)
	}
	var (
		img    *image.RGBA
		err    error
		detail string
	)
	if c.selection == SelectionArea {
		if c.area.rect.Empty() {
			return c.selectArea(ctx)
		}
		img, err = c.capturer.Region(ctx, c.area.rect)
		detail = fmt.Sprintf("area %dx%d", c.area.rect.Dx(), c.area.rect.Dy())
	} else {
		img, err = c.capturer.Fullscreen(ctx)
		detail = "fullscreen"
	}
	if err != nil {
		return c.fail(action.Capture, err)
	}
	c.show(img, detail)
	return nil
}

// show replaces the viewed image with a fresh capture.
func (c *Controller) show(img *image.RGBA, detail string) {
	if c.mode == ModeSettings {
		c.editor.Discard()
		c.settings = settingsState{}
	}
	c.model.End()
	c.image = img
	c.mode = ModeViewing
	c.area.backdrop = nil
	c.area.dragging = false
	c.log.WithField("detail", detail).WithField("bounds", img.Bounds()).Info("captured")
	if c.notifier != nil {
		c.notifier.Capture(detail, img)
	}
}

func (c *Controller) selectArea(ctx context.Context) error {
	if c.capturer == nil {
		return c.fail(action.SelectArea, errNoCapturer)
	}
	backdrop, err := c.capturer.Fullscreen(ctx)
	if err != nil {
		return c.fail(action.SelectArea, err)
	}
	c.area = areaState{backdrop: backdrop}
	c.mode = ModeSelectingArea
	return nil
}

// newScreenshot replaces the viewed image. The old one is only dropped once
// the capture, or the backdrop for a fresh area, has been taken.
func (c *Controller) newScreenshot(ctx context.Context) error {
	if c.selection != SelectionArea {
		return c.capture(ctx)
	}
	if err := c.selectArea(ctx); err != nil {
		return err
	}
	c.discard()
	return nil
}

func (c *Controller) leaveArea() {
	c.area.backdrop = nil
	c.area.dragging = false
	c.mode = ModeHome
}

// AreaBackdrop returns the frozen screen shown while selecting an area and
// the rectangle chosen so far.
func (c *Controller) AreaBackdrop() (*image.RGBA, image.Rectangle) {
	return c.area.backdrop, c.area.rect
}

// discard drops the viewed image and its annotations.
func (c *Controller) discard() {
	c.model.End()
	c.image = nil
}

func (c *Controller) modify() {
	if !c.Viewing() {
		return
	}
	if !c.model.InSession() {
		c.model.Begin()
		c.model.SetTool(annotate.ToolPen)
		return
	}
	c.image = c.flatten()
	c.model.End()
}

// flatten returns the image with every mark and the crop applied. The model
// is left as it was apart from handing over the crop.
func (c *Controller) flatten() *image.RGBA {
	crop, cropped := c.model.TakeCrop()
	out := render.Compose(c.image, c.model.Shapes())
	if cropped {
		out = render.Crop(out, crop.Intersect(out.Bounds()))
	}
	return out
}

// Composed returns the viewed image with the current annotations drawn in,
// without changing anything.
func (c *Controller) Composed() *image.RGBA {
	if c.image == nil {
		return nil
	}
	out := render.Compose(c.image, c.model.Shapes())
	if r, ok := c.model.Crop(); ok {
		out = render.Crop(out, r.Intersect(out.Bounds()))
	}
	return out
}

func (c *Controller) exported() *image.RGBA {
	img := c.Composed()
	if c.shadow {
		img = render.Shadow(img, c.shadowOpts)
	}
	return img
}

func (c *Controller) copy() error {
	if c.image == nil {
		return c.fail(action.Copy, errNoImage)
	}
	if c.clipboard == nil {
		return c.fail(action.Copy, errNoClip)
	}
	img := c.exported()
	if err := c.clipboard.WriteImage(img); err != nil {
		return c.fail(action.Copy, err)
	}
	detail := fmt.Sprintf("%dx%d image", img.Bounds().Dx(), img.Bounds().Dy())
	c.setStatus("Copied %s", detail)
	c.log.WithField("detail", detail).Info("copied to clipboard")
	if c.notifier != nil {
		c.notifier.Copy(detail)
	}
	return nil
}

func (c *Controller) save() error {
	if c.image == nil {
		return c.fail(action.Save, errNoImage)
	}
	if c.saver == nil || c.picker == nil {
		return c.fail(action.Save, errNoSaver)
	}
	suggested := "screenshot"
	if c.namer != nil {
		suggested = c.namer.Next()
	}
	path, ok, err := c.picker.PickSavePath(suggested)
	if err != nil {
		return c.fail(action.Save, err)
	}
	if !ok {
		c.setStatus("Save cancelled")
		return nil
	}
	if err := c.saver.Save(path, c.exported()); err != nil {
		return c.fail(action.Save, err)
	}
	if c.model.InSession() {
		c.image = c.flatten()
		c.model.End()
	}
	c.setStatus("Saved %s", path)
	c.log.WithField("path", path).Info("saved")
	if c.notifier != nil {
		c.notifier.Save(path)
	}
	return nil
}
