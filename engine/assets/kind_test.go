package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{"x.png", KindImage},
		{"a/b/c.jpg", KindImage},
		{"photo.jpeg", KindImage},
		{"logo.svg", KindImage},
		{"level.json", KindJSON},
		{"https://cdn.example.com/data.v2.json", KindJSON},
		{"z.unknown", KindUnsupported},
		{"X.PNG", KindUnsupported},
		{"img.png?v=2", KindUnsupported},
		{"png", KindImage},
		{"", KindUnsupported},
		{"archive.tar.gz", KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.src))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "json", KindJSON.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
}
