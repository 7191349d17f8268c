package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seqsense/surfelmapper/surfel"
)

func TestParseConfig(t *testing.T) {
	testCases := map[string]struct {
		in       string
		expected func(c *surfel.Config)
		err      bool
	}{
		"Empty": {
			in:       "",
			expected: func(*surfel.Config) {},
		},
		"Override": {
			in: `
camera:
  width: 320
  height: 240
  cx: 160
range:
  far: 3.5
match_threshold: 0.1
preview_color_samples: 5
`,
			expected: func(c *surfel.Config) {
				c.Intrinsics.Width = 320
				c.Intrinsics.Height = 240
				c.Intrinsics.Cx = 160
				c.Range.Far = 3.5
				c.MatchThreshold = 0.1
				c.PreviewColorSamples = 5
			},
		},
		"UnknownKey": {
			in:  "match_treshold: 0.1\n",
			err: true,
		},
		"InvalidRange": {
			in:  "range:\n  near: 5\n",
			err: true,
		},
		"InvalidIntrinsics": {
			in:  "camera:\n  fx: 0\n",
			err: true,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c, err := parseConfig(strings.NewReader(tt.in))
			if tt.err {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			expected := surfel.DefaultConfig()
			tt.expected(&expected)
			if diff := cmp.Diff(expected, c); diff != "" {
				t.Errorf("Config differs (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalConfig(t *testing.T) {
	c := surfel.DefaultConfig()
	c.OctreeResolution = 0.4
	b, err := marshalConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	out, err := parseConfig(strings.NewReader(string(b)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, out); diff != "" {
		t.Errorf("Config must survive marshaling (-expected +got):\n%s", diff)
	}
}
