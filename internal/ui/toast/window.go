// Package toast shows short-lived phase notifications in a small undecorated window.
package toast

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/ui/animation"
)

const (
	toastWidthFraction  = float32(0.22)
	toastHeightFraction = float32(0.10)
	defaultScreenWidth  = float32(1920)
	defaultScreenHeight = float32(1080)

	largeTextSize  = 26
	normalTextSize = 16
	maxOpacity     = 230
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window renders notifier.Notification values. All methods must be called on the Fyne thread.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	icon       *canvas.Image
	message    *canvas.Text
	throbber   *widget.ProgressBarInfinite
	fader      *animation.Fader
	cancel     context.CancelFunc
}

// New creates a hidden toast window. successIcon is shown for notifications that request it.
func New(app fyne.App, successIcon fyne.Resource) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 24, A: 0})

	icon := canvas.NewImageFromResource(successIcon)
	icon.FillMode = canvas.ImageFillContain

	message := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	message.Alignment = fyne.TextAlignCenter
	message.TextStyle = fyne.TextStyle{Bold: true}

	throbber := widget.NewProgressBarInfinite()
	throbber.Hide()

	content := container.New(&toastLayout{}, icon, message, throbber)
	window.SetContent(container.NewStack(background, content))

	toast := &Window{
		window:     window,
		background: background,
		icon:       icon,
		message:    message,
		throbber:   throbber,
	}
	toast.fader = animation.New(animation.DefaultFrame, func(alpha float64) {
		fyne.Do(func() {
			toast.setOpacity(alpha)
		})
	})
	return toast
}

// Show displays notification and fades it out after its expiry.
func (toast *Window) Show(notification notifier.Notification) {
	style := notification.Style
	toast.message.Text = notification.Text
	toast.message.TextSize = normalTextSize
	if style.LargeFont {
		toast.message.TextSize = largeTextSize
	}
	if style.SuccessIcon {
		toast.icon.Show()
	} else {
		toast.icon.Hide()
	}
	if style.UseThrobber {
		toast.throbber.Show()
		toast.throbber.Start()
	} else {
		toast.throbber.Stop()
		toast.throbber.Hide()
	}

	toast.setOpacity(0)
	toast.resizeToScreenFraction()
	toast.window.Show()

	ctx, cancel := context.WithCancel(context.Background())
	if toast.cancel != nil {
		toast.cancel()
	}
	toast.cancel = cancel
	toast.fader.Play(ctx, FadeFor(style), func() {
		fyne.Do(toast.hide)
	})
}

// Hide closes the toast immediately.
func (toast *Window) Hide() {
	if toast.cancel != nil {
		toast.cancel()
		toast.cancel = nil
	}
	toast.fader.Stop()
	toast.hide()
}

func (toast *Window) hide() {
	toast.throbber.Stop()
	toast.window.Hide()
}

// FadeFor converts a notification style into a fade sequence.
func FadeFor(style notifier.Style) animation.Fade {
	return animation.Fade{In: style.FadeIn, Hold: style.Expire, Out: style.FadeOut}
}

func (toast *Window) setOpacity(alpha float64) {
	value := opacityToAlpha(alpha)
	toast.background.FillColor = color.NRGBA{R: 24, G: 24, B: 24, A: uint8(float64(value) * maxOpacity / 255)}
	toast.message.Color = color.NRGBA{R: 255, G: 255, B: 255, A: value}
	toast.icon.Translucency = 1 - alpha
	canvas.Refresh(toast.background)
	toast.message.Refresh()
	toast.icon.Refresh()
	applyNativeOpacity(toast.window, value)
}

func (toast *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := toast.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * toastWidthFraction
	height := screenSize.Height * toastHeightFraction
	minSize := toast.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	toast.window.Resize(fyne.NewSize(width, height))
	toast.window.CenterOnScreen()
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}

// toastLayout puts a square icon on the left, the message in the remaining
// space and an optional throbber strip along the bottom.
type toastLayout struct{}

func (layout *toastLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	icon := objects[0]
	message := objects[1]
	throbber := objects[2]

	throbberHeight := float32(0)
	if throbber.Visible() {
		throbberHeight = throbber.MinSize().Height
		throbber.Move(fyne.NewPos(0, size.Height-throbberHeight))
		throbber.Resize(fyne.NewSize(size.Width, throbberHeight))
	}

	bodyHeight := size.Height - throbberHeight
	margin := bodyHeight * 0.15
	textX := margin
	if icon.Visible() {
		side := bodyHeight - margin*2
		if side < 0 {
			side = 0
		}
		icon.Move(fyne.NewPos(margin, margin))
		icon.Resize(fyne.NewSize(side, side))
		textX = margin*2 + side
	}

	messageSize := message.MinSize()
	textWidth := size.Width - textX - margin
	if textWidth < 0 {
		textWidth = 0
	}
	messageY := (bodyHeight - messageSize.Height) / 2
	if messageY < 0 {
		messageY = 0
	}
	message.Move(fyne.NewPos(textX, messageY))
	message.Resize(fyne.NewSize(textWidth, messageSize.Height))
}

func (layout *toastLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	messageSize := objects[1].MinSize()
	height := messageSize.Height * 2
	width := messageSize.Width + height + 20
	if objects[2].Visible() {
		height += objects[2].MinSize().Height
	}
	return fyne.NewSize(width, height)
}
