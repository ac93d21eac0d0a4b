package speech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLanguageCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tamil", "ta-IN"},
		{"ta", "ta-IN"},
		{"TA", "ta-IN"},
		{"hindi", "hi-IN"},
		{"Hindi", "hi-IN"},
		{"hi", "hi-IN"},
		{"tanglish", "en-US"},
		{"Tanglish", "en-US"},
		{"en", "en-US"},
		{"xyz", "en-US"},
		{"", "en-US"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, LanguageCode(tc.in))
		})
	}
}
