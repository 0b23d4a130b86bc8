package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_sorted(t *testing.T) {
	assert.Equal(t, []string{"gruvbox", "tokyo-night"}, ThemeNames())
}

func TestGetPalette(t *testing.T) {
	p, ok := GetPalette(DefaultTheme)
	require.True(t, ok)
	assert.NotEmpty(t, p.Primary)
	assert.NotEmpty(t, p.Info)

	_, ok = GetPalette("missing")
	assert.False(t, ok)
}

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetThemeByName(DefaultTheme) })

	require.True(t, SetThemeByName("gruvbox"))
	assert.Equal(t, themes["gruvbox"], CurrentPalette)
	assert.Equal(t, themes["gruvbox"].Error, ToastErrorStyle.GetBorderTopForeground())

	assert.False(t, SetThemeByName("missing"))
	assert.Equal(t, themes["gruvbox"], CurrentPalette, "unknown theme leaves current in place")
}
