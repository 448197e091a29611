package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"11 5555-1234", "1155551234"},
		{"(011) 5555 1234", "01155551234"},
		{"+54 9 11 5555-1234", "+5491155551234"},
		{"  1155551234  ", "1155551234"},
		{"11-5555+1234", "1155551234"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestIsPhoneValid(t *testing.T) {
	require.True(t, IsPhoneValid("11 5555-1234"))
	require.True(t, IsPhoneValid("+5491155551234"))

	require.False(t, IsPhoneValid("12345"))
	require.False(t, IsPhoneValid(""))
	require.False(t, IsPhoneValid("+12345678901234567890"))
}
