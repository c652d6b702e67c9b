package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	postsCol       = "posts"
	aboutCol       = "about"
	subscribersCol = "subscribers"

	aboutDocID = "about"
)

// MongoStore keeps every record in a hosted document collection with the
// markdown content inlined in the post document. Individual operations are
// atomic per document; UpdatePost is still a non-transactional
// read-then-write at the service layer, so the last writer wins.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("could not ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}

	if err := s.ensureAbout(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type aboutDoc struct {
	ID      string `bson:"_id"`
	Title   string `bson:"title"`
	Content string `bson:"content"`
}

func (s *MongoStore) ensureAbout(ctx context.Context) error {
	err := s.db.Collection(aboutCol).FindOne(ctx, bson.M{"_id": aboutDocID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = s.db.Collection(aboutCol).InsertOne(ctx, aboutDoc{
		ID:      aboutDocID,
		Title:   DefaultAboutTitle,
		Content: DefaultAboutContent,
	})
	return err
}

func (s *MongoStore) ListPosts(ctx context.Context) ([]Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(bson.M{"content": 0})

	cursor, err := s.db.Collection(postsCol).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *MongoStore) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := s.db.Collection(postsCol).FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (s *MongoStore) InsertPost(ctx context.Context, post *Post) error {
	_, err := s.db.Collection(postsCol).InsertOne(ctx, post)
	return err
}

func (s *MongoStore) UpdatePost(ctx context.Context, post *Post) error {
	res, err := s.db.Collection(postsCol).ReplaceOne(ctx, bson.M{"id": post.ID}, post)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *MongoStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.Collection(postsCol).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *MongoStore) GetAbout(ctx context.Context) (*About, error) {
	var doc aboutDoc
	err := s.db.Collection(aboutCol).FindOne(ctx, bson.M{"_id": aboutDocID}).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &About{Title: doc.Title, Content: doc.Content}, nil
}

func (s *MongoStore) PutAbout(ctx context.Context, about *About) error {
	doc := aboutDoc{ID: aboutDocID, Title: about.Title, Content: about.Content}
	opts := options.Replace().SetUpsert(true)

	_, err := s.db.Collection(aboutCol).ReplaceOne(ctx, bson.M{"_id": aboutDocID}, doc, opts)
	return err
}

func (s *MongoStore) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}})

	cursor, err := s.db.Collection(subscribersCol).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	subs := []Subscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}

	return subs, nil
}

// InsertSubscriber checks for an existing email and then inserts. The two
// steps are not transactional; the window is accepted for a single-owner
// deployment.
func (s *MongoStore) InsertSubscriber(ctx context.Context, sub *Subscriber) error {
	err := s.db.Collection(subscribersCol).FindOne(ctx, bson.M{"email": sub.Email}).Err()
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = s.db.Collection(subscribersCol).InsertOne(ctx, sub)
	return err
}

func (s *MongoStore) DeleteSubscriber(ctx context.Context, id string) error {
	res, err := s.db.Collection(subscribersCol).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
