/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package term holds the terminal styling shared by the console reports.
package term

import (
	"sync/atomic"

	"github.com/fatih/color"
)

var (
	boldOn  = newBold(true)
	boldOff = newBold(false)
	plain   atomic.Bool
)

func newBold(enabled bool) *color.Color {
	c := color.New(color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Bold wraps s in the terminal bold escape sequence unless styling was disabled.
func Bold(s string) string {
	if plain.Load() {
		return boldOff.Sprint(s)
	}
	return boldOn.Sprint(s)
}

// SetStyling toggles escape sequences for every report written afterwards.
func SetStyling(enabled bool) {
	plain.Store(!enabled)
}
