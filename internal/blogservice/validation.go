package blogservice

import (
	"math"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(len(title) <= 200, "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(len(author) <= 100, "author", "must not be more than 100 characters long")
}

func validateURL(v *common.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	v.Check(len(url) <= 2048, "url", "must not be more than 2048 characters long")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
	// the postgres column is a 32-bit integer
	v.Check(likes <= math.MaxInt32, "likes", "must not be more than 2147483647")
}
