package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		code   string
		length int
		valid  bool
	}{
		{
			name:   "Valid five digit code",
			code:   "12345",
			length: 5,
			valid:  true,
		},
		{
			name:   "Leading zeros are fine",
			code:   "00042",
			length: 5,
			valid:  true,
		},
		{
			name:   "Too short",
			code:   "1234",
			length: 5,
			valid:  false,
		},
		{
			name:   "Too long",
			code:   "123456",
			length: 5,
			valid:  false,
		},
		{
			name:   "Letters rejected",
			code:   "12a45",
			length: 5,
			valid:  false,
		},
		{
			name:   "Whitespace rejected",
			code:   "1234 ",
			length: 5,
			valid:  false,
		},
		{
			name:   "Empty code",
			code:   "",
			length: 5,
			valid:  false,
		},
		{
			name:   "Different configured length",
			code:   "123456",
			length: 6,
			valid:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, Validate(tc.code, tc.length))
		})
	}
}

func TestGenerateSatisfiesValidate(t *testing.T) {
	for _, length := range []int{4, 5, 6, 8} {
		for i := 0; i < 50; i++ {
			c := Generate(length)
			assert.True(t, Validate(c, length), "generated code %q for length %d", c, length)
		}
	}
}
