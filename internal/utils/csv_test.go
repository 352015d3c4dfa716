package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumnIndex(t *testing.T) {
	header := []string{"ID", " name ", "Email"}
	assert.Equal(t, 1, FindColumnIndex(header, []string{"Name"}))
	assert.Equal(t, -1, FindColumnIndex(header, []string{"Phone"}))
	assert.Equal(t, -1, FindColumnIndex(nil, []string{"Name"}))
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanName("  Jane   Doe \n"))
	assert.Equal(t, "", CleanName("   "))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("JANE  DOE"), NameKey(" jane doe "))
	assert.NotEqual(t, NameKey("Jane Doe"), NameKey("Jane Doh"))
}
