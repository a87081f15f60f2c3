package mongodb

import (
	"context"
	"errors"

	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	blogsCollection = "blogs"
)

type Store struct {
	users *mongo.Collection
	blogs *mongo.Collection
}

var (
	_ userservice.Repository = (*Store)(nil)
	_ blogservice.Repository = (*Store)(nil)
)

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	PasswordHash []byte               `bson:"passwordHash"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
}

type blogDocument struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty"`
	Title  string              `bson:"title"`
	Author string              `bson:"author"`
	URL    string              `bson:"url"`
	Likes  int                 `bson:"likes"`
	User   *primitive.ObjectID `bson:"user,omitempty"`
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		users: db.Collection(usersCollection),
		blogs: db.Collection(blogsCollection),
	}
}

// EnsureIndexes creates the unique username index. It is safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_username_key"),
	})
	return err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrMalformedID
	}

	return oid, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrRecordNotFound
	default:
		return err
	}
}
