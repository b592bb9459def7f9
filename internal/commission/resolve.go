package commission

import (
	"strconv"
	"strings"
)

// ResolveSponsor finds the user whose numeric id or referral code matches
// ref. Referral codes compare case-insensitively. Both the direct-sponsor
// lookup and the upline walk go through this single resolver.
func ResolveSponsor(users []User, ref string) (User, bool) {
	if ref == "" {
		return User{}, false
	}

	for _, u := range users {
		if strconv.FormatInt(u.ID, 10) == ref || strings.EqualFold(u.ReferralCode, ref) {
			return u, true
		}
	}
	return User{}, false
}

func userByID(users []User, id int64) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
