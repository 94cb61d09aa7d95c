package sliceutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotedStringList(t *testing.T) {
	assert.Equal(t, `"apk", "apt-get"`, QuotedStringList([]string{"apk", "apt-get"}))
	assert.Equal(t, "", QuotedStringList(nil))
}

func TestBulletedIndentedStringList(t *testing.T) {
	assert.Equal(t, "\t- app\n\t- web", BulletedIndentedStringList([]string{"app", "web"}))
	assert.Equal(t, "", BulletedIndentedStringList(nil))
}
