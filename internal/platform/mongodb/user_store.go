package mongodb

import (
	"context"
	"errors"

	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertUser(ctx context.Context, u *userservice.User) error {
	d := userDocument{
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.Password.Hash,
		Blogs:        []primitive.ObjectID{},
	}

	res, err := s.users.InsertOne(ctx, d)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return userservice.ErrDuplicateUsername
		default:
			return err
		}
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	u.ID = oid.Hex()

	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userservice.User, error) {
	var d userDocument
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&d)
	if err != nil {
		return nil, mapError(err)
	}

	u := userservice.User{
		ID:       d.ID.Hex(),
		Username: d.Username,
		Name:     d.Name,
		Password: userservice.Password{Hash: d.PasswordHash},
		Blogs:    make([]userservice.BlogRef, 0, len(d.Blogs)),
	}
	for _, id := range d.Blogs {
		u.Blogs = append(u.Blogs, userservice.BlogRef{ID: id.Hex()})
	}

	return &u, nil
}

// ListUsers returns every user with the blogs in their list populated, in list order.
// References to blogs that no longer exist are skipped.
func (s *Store) ListUsers(ctx context.Context) ([]userservice.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	var blogIDs []primitive.ObjectID
	for _, d := range docs {
		blogIDs = append(blogIDs, d.Blogs...)
	}

	refs := make(map[primitive.ObjectID]userservice.BlogRef)
	if len(blogIDs) > 0 {
		cursor, err := s.blogs.Find(ctx, bson.M{"_id": bson.M{"$in": blogIDs}})
		if err != nil {
			return nil, err
		}

		var blogs []blogDocument
		if err := cursor.All(ctx, &blogs); err != nil {
			return nil, err
		}

		for _, b := range blogs {
			refs[b.ID] = userservice.BlogRef{ID: b.ID.Hex(), Title: b.Title, Author: b.Author, URL: b.URL}
		}
	}

	users := make([]userservice.User, 0, len(docs))
	for _, d := range docs {
		u := userservice.User{
			ID:       d.ID.Hex(),
			Username: d.Username,
			Name:     d.Name,
			Blogs:    make([]userservice.BlogRef, 0, len(d.Blogs)),
		}
		for _, id := range d.Blogs {
			if ref, ok := refs[id]; ok {
				u.Blogs = append(u.Blogs, ref)
			}
		}
		users = append(users, u)
	}

	return users, nil
}
