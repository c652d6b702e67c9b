package postservice

import (
	"log/slog"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

type PostService struct {
	s      store.Store
	c      *common.Cache
	mb     common.MessageProducer
	logger *slog.Logger
}

// NewPostService wires the resource service to its storage backend. mb may
// be nil, in which case publish announcements are disabled.
func NewPostService(s store.Store, c *common.Cache, mb common.MessageProducer, logger *slog.Logger) *PostService {
	return &PostService{s: s, c: c, mb: mb, logger: logger}
}

type CreatePostRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
}

type UpdatePostRequest struct {
	ID         string `json:"-"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
}

// PostView is the single-post read shape: metadata plus the markdown
// rendered to HTML and the raw markdown source.
type PostView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Date       string `json:"date"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
	Content    string `json:"content"`
	RawContent string `json:"rawContent"`
}

type AboutView struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	RawContent string `json:"rawContent"`
}

// Announcement is the event published to the message broker when a post is
// created.
type Announcement struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}
