package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("isv")
	require.NoError(t, err)
	assert.Equal(t, ISV, p)

	p, err = Parse("isva")
	require.NoError(t, err)
	assert.Equal(t, ISVA, p)
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "ISV", "verify", "isva2"} {
		_, err := Parse(s)
		assert.Error(t, err, "input %q", s)
	}
}
