package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const (
	gravatarBase    = "https://www.gravatar.com/avatar/"
	gravatarSize    = 100
	gravatarRating  = "g"
	gravatarDefault = "mp"
)

// GravatarURL returns the avatar url shown next to a commenter.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", fmt.Sprint(gravatarSize))
	q.Set("r", gravatarRating)
	q.Set("d", gravatarDefault)
	return gravatarBase + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
