package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Projects(t *testing.T) {
	c := Default()

	assert.Len(t, c.Projects(), 15)
	assert.Equal(t, "CIV", c.Projects()[0].Code)

	label, ok := c.ProjectLabel("AFR")
	assert.True(t, ok)
	assert.Equal(t, "Afrique", label)

	assert.True(t, c.HasProject("SANTE"))
	assert.False(t, c.HasProject("XYZ"))
	assert.False(t, c.HasProject("civ"), "project codes are case-sensitive, callers uppercase first")
}

func TestBanners_Filter(t *testing.T) {
	c := Default()

	all := c.Banners("")
	assert.NotEmpty(t, all)
	assert.LessOrEqual(t, len(all), BannerSuggestLimit)

	matched := c.Banners("source")
	assert.ElementsMatch(t, []string{"sources", "sources manquantes", "à sourcer"}, matched)

	assert.Empty(t, c.Banners("zzz"))

	// filter is case-insensitive
	assert.Equal(t, matched, c.Banners("SOURCE"))
}

func TestLoad_Override(t *testing.T) {
	r := strings.NewReader(`
projects:
  - code: TEST
    label: Test project
  - code: DEMO
    label: Demo project
banners:
  - one
  - two
`)
	c, err := Load(r)
	require.NoError(t, err)

	assert.Len(t, c.Projects(), 2)
	assert.True(t, c.HasProject("DEMO"))
	assert.False(t, c.HasProject("CIV"))
	assert.Equal(t, []string{"one", "two"}, c.Banners(""))
}

func TestLoad_EmptySectionsKeepDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(`banners: ["custom"]`))
	require.NoError(t, err)

	assert.True(t, c.HasProject("CIV"), "projects fall back to defaults")
	assert.Equal(t, []string{"custom"}, c.Banners(""))
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader(`projects: [{label: "no code"}]`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{not yaml`))
	assert.Error(t, err)
}
