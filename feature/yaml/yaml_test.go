package yaml

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weather = `
classes: ["yes", "no"]
features:
  wind: [strong, weak]
  outlook: [sunny, rainy]
  humidity: [high, normal]
`

func TestReadMetadata(t *testing.T) {
	reg := feature.NewRegistry()
	md, err := ReadMetadata([]byte(weather), reg)
	require.NoError(t, err)

	require.Len(t, md.Features, 3)
	names := []string{}
	for _, f := range md.Features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"wind", "outlook", "humidity"}, names)
	assert.Equal(t, []string{"strong", "weak"}, md.Features[0].Values())
	assert.Equal(t, "yes", md.Classes.First())
	assert.Same(t, md.Features[1], reg.Lookup("outlook"))
}

func TestReadMetadataErrors(t *testing.T) {
	tests := map[string]string{
		"no classes":        "features:\n  wind: [strong, weak]\n",
		"three classes":     "classes: [a, b, c]\nfeatures:\n  wind: [strong, weak]\n",
		"no features":       "classes: [yes, no]\n",
		"one value":         "classes: [yes, no]\nfeatures:\n  wind: [strong]\n",
		"scalar value":      "classes: [yes, no]\nfeatures:\n  wind: strong\n",
		"not yaml":          "classes: [yes, no\n",
		"conflicting value": "classes: [yes, no]\nfeatures:\n  wind: [weak, strong]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			reg := feature.NewRegistry()
			_, err := reg.Intern("wind", "strong", "weak")
			require.NoError(t, err)
			_, err = ReadMetadata([]byte(doc), reg)
			assert.Error(t, err)
		})
	}
}

func TestReadMetadataFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.yml")
	require.NoError(t, os.WriteFile(path, []byte(weather), 0o644))

	md, err := ReadMetadataFromFile(path, feature.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, md.Features, 3)

	_, err = ReadMetadataFromFile(filepath.Join(t.TempDir(), "missing.yml"), feature.NewRegistry())
	assert.Error(t, err)
}

func TestWriteMetadataRoundTrip(t *testing.T) {
	reg := feature.NewRegistry()
	md, err := ReadMetadata([]byte(weather), reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMetadata(&buf, md))

	again, err := ReadMetadata(buf.Bytes(), reg)
	require.NoError(t, err)
	assert.Equal(t, md.Features, again.Features)
	assert.True(t, md.Classes.Equal(again.Classes))
}
