package userservice

import (
	"regexp"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

var (
	UsernameRX = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters, numbers, dots, underscores and hyphens")
}

func validateName(v *common.Validator, name string) {
	v.Check(len(name) <= 100, "name", "must not be more than 100 characters long")
}

// bcrypt ignores everything after 72 bytes.
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckStringLength(password, 3, 72), "password", "must be between 3 and 72 characters long")
}
