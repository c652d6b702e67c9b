package postservice

import (
	"github.com/velvetkeys/inkpost/internal/common"
)

const (
	maxTitleLength   = 200
	maxAuthorLength  = 100
	maxExcerptLength = 300
	maxContentBytes  = 1 << 20 // 1 MB of markdown
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, maxTitleLength), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	if author == "" {
		return
	}
	v.Check(v.CheckStringLength(author, 1, maxAuthorLength), "author", "must not be more than 100 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(v.CheckMaxBytes(content, maxContentBytes), "content", "must not be more than 1MB")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	if excerpt == "" {
		return
	}
	v.Check(v.CheckStringLength(excerpt, 1, maxExcerptLength), "excerpt", "must not be more than 300 characters long")
}

func validateID(v *common.Validator, id string) {
	v.Check(id != "", "id", "must be provided")
}
