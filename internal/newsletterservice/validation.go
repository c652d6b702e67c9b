package newsletterservice

import (
	"github.com/velvetkeys/inkpost/internal/common"
)

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.CheckEmail(email), "email", "must be a valid email address")
}
