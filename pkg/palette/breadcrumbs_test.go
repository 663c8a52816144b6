package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cataplot/palette/pkg/palette"
)

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		path           palette.Breadcrumbs
		expectedString string
		expectedLabels []string
		expectedLast   string
		expectedParent palette.Breadcrumbs
		expectedLen    int
		expectedEmpty  bool
	}{
		"empty path": {
			path:           palette.Breadcrumbs{},
			expectedEmpty:  true,
			expectedLen:    0,
			expectedLabels: nil,
			expectedLast:   "",
			expectedString: "",
			expectedParent: palette.Breadcrumbs{},
		},
		"command only": {
			path:           palette.NewBreadcrumbs("Browse Files"),
			expectedLen:    1,
			expectedLabels: []string{"Browse Files"},
			expectedLast:   "Browse Files",
			expectedString: "Browse Files",
			expectedParent: palette.Breadcrumbs{},
		},
		"nested path": {
			path:           palette.NewBreadcrumbs("Browse Files", "docs", "api.md"),
			expectedLen:    3,
			expectedLabels: []string{"Browse Files", "docs", "api.md"},
			expectedLast:   "api.md",
			expectedString: "Browse Files > docs > api.md",
			expectedParent: palette.NewBreadcrumbs("Browse Files", "docs"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expectedEmpty, tc.path.Empty())
			assert.Equal(t, tc.expectedLen, tc.path.Len())
			assert.Equal(t, tc.expectedLabels, tc.path.Labels())
			assert.Equal(t, tc.expectedLast, tc.path.Last())
			assert.Equal(t, tc.expectedString, tc.path.String())
			assert.Equal(t, tc.expectedParent.Command, tc.path.Parent().Command)
			assert.Equal(t, tc.expectedParent.Labels(), tc.path.Parent().Labels())
		})
	}
}

func TestBreadcrumbsClone(t *testing.T) {
	t.Parallel()

	orig := palette.NewBreadcrumbs("Browse Files", "docs")

	clone := orig.Clone()
	clone.Rest[0] = "src"

	assert.Equal(t, []string{"Browse Files", "docs"}, orig.Labels())
	assert.Equal(t, []string{"Browse Files", "src"}, clone.Labels())
}
