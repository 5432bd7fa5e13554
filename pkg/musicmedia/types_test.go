package musicmedia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

func TestMediaTypeFromContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        musicmedia.MediaType
	}{
		{"png image", "image/png", musicmedia.MediaTypeImage},
		{"jpeg image", "image/jpeg", musicmedia.MediaTypeImage},
		{"mp3 audio", "audio/mpeg", musicmedia.MediaTypeAudio},
		{"mp4 video", "video/mp4", musicmedia.MediaTypeVideo},
		{"pdf document", "application/pdf", musicmedia.MediaTypeDocument},
		{"plain text", "text/plain", musicmedia.MediaTypeOther},
		{"json", "application/json", musicmedia.MediaTypeOther},
		{"empty", "", musicmedia.MediaTypeUnknown},
		{"uppercase", "IMAGE/PNG", musicmedia.MediaTypeImage},
		{"mixed case pdf", "Application/PDF", musicmedia.MediaTypeDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, musicmedia.MediaTypeFromContentType(tt.contentType))
		})
	}
}

func TestClampRating(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, 5},
		{100, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, musicmedia.ClampRating(tt.value), "clamp(%d)", tt.value)
	}
}

func TestValidRating(t *testing.T) {
	assert.False(t, musicmedia.ValidRating(0))
	assert.True(t, musicmedia.ValidRating(1))
	assert.True(t, musicmedia.ValidRating(5))
	assert.False(t, musicmedia.ValidRating(6))
}
