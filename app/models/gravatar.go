package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const gravatarURLFormat = "http://www.gravatar.com/avatar/%s.jpg?r=g"

// GravatarURL returns the avatar image URL for an email address. The address
// is trimmed and lowercased before hashing, as gravatar.com expects.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf(gravatarURLFormat, hex.EncodeToString(sum[:]))
}
