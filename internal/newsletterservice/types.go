package newsletterservice

import (
	"github.com/velvetkeys/inkpost/internal/store"
)

type NewsletterService struct {
	s store.Store
}

func NewNewsletterService(s store.Store) *NewsletterService {
	return &NewsletterService{s: s}
}
