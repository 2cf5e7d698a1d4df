/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBold(t *testing.T) {
	t.Cleanup(func() { SetStyling(true) })

	styled := Bold("Name")
	assert.Contains(t, styled, "\x1b[1m")
	assert.Contains(t, styled, "Name")
	assert.NotEqual(t, "Name", styled)

	SetStyling(false)
	assert.Equal(t, "Name", Bold("Name"))
}
