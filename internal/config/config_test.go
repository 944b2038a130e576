package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes("100x100, 300X200,,")
	require.NoError(t, err)
	assert.Equal(t, []ThumbnailSize{{100, 100}, {300, 200}}, sizes)
	assert.Equal(t, "300x200", sizes[1].String())

	empty, err := ParseSizes("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"100", "ax100", "100x0", "-1x5"} {
		_, err := ParseSizes(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("IMAGE_GALLERY_LIMIT", "not-a-number")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("THUMBNAIL_SIZES", "64x64")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CATEGORY_SEPARATOR", " / ")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 8, cfg.GalleryLimit)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, []ThumbnailSize{{64, 64}}, cfg.ThumbnailSizes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, " / ", cfg.CategorySeparator)
}
