package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

const (
	indexFile       = "posts.json"
	aboutFile       = "about.json"
	subscribersFile = "subscribers.json"
	postsDir        = "posts"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// FileStore keeps posts as one JSON index plus one markdown file per post,
// with singleton JSON files for the about page and the subscriber list.
// All index mutations are serialized behind mu, so concurrent mutations
// within one process cannot drop each other's write. Concurrent writers
// from separate processes are not supported.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, postsDir), 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	s := &FileStore{dir: dir}

	if err := s.ensureFile(indexFile, []Post{}); err != nil {
		return nil, err
	}
	if err := s.ensureFile(subscribersFile, []Subscriber{}); err != nil {
		return nil, err
	}
	if err := s.ensureFile(aboutFile, &About{Title: DefaultAboutTitle, Content: DefaultAboutContent}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore) ensureFile(name string, v any) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return writeJSONFile(path, v)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// safeName strips directory components and disallowed characters so a
// stored filename can never escape the posts directory.
func safeName(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ".")
	if name == "" {
		return "", errors.New("invalid filename")
	}
	return name, nil
}

func (s *FileStore) readIndex() ([]Post, error) {
	var posts []Post
	if err := readJSONFile(filepath.Join(s.dir, indexFile), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *FileStore) writeIndex(posts []Post) error {
	return writeJSONFile(filepath.Join(s.dir, indexFile), posts)
}

func (s *FileStore) ListPosts(_ context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	return posts, nil
}

func (s *FileStore) GetPost(_ context.Context, id string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].ID != id {
			continue
		}

		post := posts[i]
		name, err := safeName(post.Filename)
		if err != nil {
			return nil, err
		}

		content, err := os.ReadFile(filepath.Join(s.dir, postsDir, name))
		if err != nil {
			return nil, err
		}
		post.Content = string(content)

		return &post, nil
	}

	return nil, ErrNotFound
}

func (s *FileStore) InsertPost(_ context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := safeName(post.Filename)
	if err != nil {
		return err
	}
	post.Filename = name

	if err := os.WriteFile(filepath.Join(s.dir, postsDir, name), []byte(post.Content), 0o644); err != nil {
		return err
	}

	posts, err := s.readIndex()
	if err != nil {
		return err
	}

	entry := *post
	entry.Content = ""
	posts = append(posts, entry)

	return s.writeIndex(posts)
}

func (s *FileStore) UpdatePost(_ context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return err
	}

	for i := range posts {
		if posts[i].ID != post.ID {
			continue
		}

		name, err := safeName(posts[i].Filename)
		if err != nil {
			return err
		}

		if err := os.WriteFile(filepath.Join(s.dir, postsDir, name), []byte(post.Content), 0o644); err != nil {
			return err
		}

		// id, date, and filename are immutable across updates.
		entry := *post
		entry.Content = ""
		entry.Date = posts[i].Date
		entry.Filename = posts[i].Filename
		posts[i] = entry

		return s.writeIndex(posts)
	}

	return ErrNotFound
}

func (s *FileStore) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readIndex()
	if err != nil {
		return err
	}

	for i := range posts {
		if posts[i].ID != id {
			continue
		}

		filename := posts[i].Filename
		posts = append(posts[:i], posts[i+1:]...)

		if err := s.writeIndex(posts); err != nil {
			return err
		}

		// The index removal is authoritative. An orphaned content file is
		// accepted rather than failing the delete.
		if name, err := safeName(filename); err == nil {
			os.Remove(filepath.Join(s.dir, postsDir, name))
		}

		return nil
	}

	return ErrNotFound
}

func (s *FileStore) GetAbout(_ context.Context) (*About, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var about About
	if err := readJSONFile(filepath.Join(s.dir, aboutFile), &about); err != nil {
		return nil, err
	}
	return &about, nil
}

func (s *FileStore) PutAbout(_ context.Context, about *About) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSONFile(filepath.Join(s.dir, aboutFile), about)
}

func (s *FileStore) ListSubscribers(_ context.Context) ([]Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSubscribers()
}

func (s *FileStore) readSubscribers() ([]Subscriber, error) {
	var subs []Subscriber
	if err := readJSONFile(filepath.Join(s.dir, subscribersFile), &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *FileStore) InsertSubscriber(_ context.Context, sub *Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubscribers()
	if err != nil {
		return err
	}

	for _, existing := range subs {
		if strings.EqualFold(existing.Email, sub.Email) {
			return ErrDuplicateEmail
		}
	}

	subs = append(subs, *sub)

	return writeJSONFile(filepath.Join(s.dir, subscribersFile), subs)
}

func (s *FileStore) DeleteSubscriber(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubscribers()
	if err != nil {
		return err
	}

	for i := range subs {
		if subs[i].ID != id {
			continue
		}

		subs = append(subs[:i], subs[i+1:]...)
		return writeJSONFile(filepath.Join(s.dir, subscribersFile), subs)
	}

	return ErrNotFound
}
