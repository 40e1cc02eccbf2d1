//go:build !windows

package toast

import "fyne.io/fyne/v2"

// Other platforms rely on the canvas alpha set by setOpacity.
func applyNativeOpacity(fyne.Window, uint8) {}
