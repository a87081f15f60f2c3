package mongodb

import (
	"context"
	"errors"

	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (d blogDocument) toBlog(owners map[primitive.ObjectID]*blogservice.Owner) blogservice.Blog {
	b := blogservice.Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}
	if d.User != nil {
		b.UserID = d.User.Hex()
		b.User = owners[*d.User]
	}

	return b
}

// owners loads the username and name of every user referenced by docs.
func (s *Store) owners(ctx context.Context, docs ...blogDocument) (map[primitive.ObjectID]*blogservice.Owner, error) {
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		if d.User != nil {
			ids = append(ids, *d.User)
		}
	}

	owners := make(map[primitive.ObjectID]*blogservice.Owner)
	if len(ids) == 0 {
		return owners, nil
	}

	opts := options.Find().SetProjection(bson.M{"username": 1, "name": 1})
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	var users []userDocument
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		owners[u.ID] = &blogservice.Owner{ID: u.ID.Hex(), Username: u.Username, Name: u.Name}
	}

	return owners, nil
}

func (s *Store) populate(ctx context.Context, d blogDocument) (*blogservice.Blog, error) {
	owners, err := s.owners(ctx, d)
	if err != nil {
		return nil, err
	}

	b := d.toBlog(owners)
	return &b, nil
}

func (s *Store) ListBlogs(ctx context.Context) ([]blogservice.Blog, error) {
	cursor, err := s.blogs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	owners, err := s.owners(ctx, docs...)
	if err != nil {
		return nil, err
	}

	blogs := make([]blogservice.Blog, 0, len(docs))
	for _, d := range docs {
		blogs = append(blogs, d.toBlog(owners))
	}

	return blogs, nil
}

func (s *Store) GetBlog(ctx context.Context, id string) (*blogservice.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var d blogDocument
	err = s.blogs.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err != nil {
		return nil, mapError(err)
	}

	return s.populate(ctx, d)
}

func (s *Store) InsertBlog(ctx context.Context, b *blogservice.Blog) error {
	userID, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return blogservice.ErrUserForeignKey
	}

	var owner userDocument
	err = s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&owner)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return blogservice.ErrUserForeignKey
		default:
			return err
		}
	}

	d := blogDocument{
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User:   &userID,
	}

	res, err := s.blogs.InsertOne(ctx, d)
	if err != nil {
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}

	b.ID = oid.Hex()
	b.User = &blogservice.Owner{ID: owner.ID.Hex(), Username: owner.Username, Name: owner.Name}

	return nil
}

func (s *Store) UpdateBlog(ctx context.Context, id string, patch blogservice.BlogPatch) (*blogservice.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.Likes != nil {
		set["likes"] = *patch.Likes
	}

	if len(set) == 0 {
		return s.GetBlog(ctx, id)
	}

	var d blogDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.blogs.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		return nil, mapError(err)
	}

	return s.populate(ctx, d)
}

func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.blogs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (s *Store) LinkUserBlog(ctx context.Context, userID, blogID string) error {
	return s.updateUserBlogs(ctx, userID, blogID, "$push")
}

func (s *Store) UnlinkUserBlog(ctx context.Context, userID, blogID string) error {
	return s.updateUserBlogs(ctx, userID, blogID, "$pull")
}

func (s *Store) updateUserBlogs(ctx context.Context, userID, blogID, op string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}

	bid, err := parseID(blogID)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateByID(ctx, uid, bson.M{op: bson.M{"blogs": bid}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
