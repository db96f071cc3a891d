package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	const want = "http://www.gravatar.com/avatar/ef705d0532413ff81e65e2472752122c.jpg?r=g"

	assert.Equal(t, want, GravatarURL("i@omardo.com"))
	assert.Equal(t, want, GravatarURL("  I@Omardo.com \n"), "address is trimmed and lowercased")
	assert.NotEqual(t, want, GravatarURL("a1@example.com"))
}

func TestCommentGravatar(t *testing.T) {
	comment := &Comment{Email: "i@omardo.com"}
	assert.Equal(t, GravatarURL("i@omardo.com"), comment.Gravatar())
}
