package generator_test

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"anitrack/pkg/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	a, err := generator.RandomString(rand.Reader, 48)
	require.NoError(t, err)
	b, err := generator.RandomString(rand.Reader, 48)
	require.NoError(t, err)

	assert.Len(t, a, 48)
	assert.NotEqual(t, a, b)
	for _, c := range a {
		assert.True(t, strings.ContainsRune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", c))
	}
}

func TestRandomString_Errors(t *testing.T) {
	_, err := generator.RandomString(rand.Reader, 0)
	assert.ErrorIs(t, err, generator.ErrLength)

	_, err = generator.RandomString(bytes.NewReader(nil), 8)
	assert.Error(t, err)
}
