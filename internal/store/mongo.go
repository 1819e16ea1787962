package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
)

// MongoUsers implements UserStore on the users collection.
type MongoUsers struct {
	col *mongo.Collection
}

// NewMongoUsers binds the users collection and ensures the unique username
// index, so duplicate signups fail at the store instead of racing a
// read-then-insert check.
func NewMongoUsers(ctx context.Context, db *mongo.Database) (*MongoUsers, error) {
	col := db.Collection("users")
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure username index: %w", err)
	}
	return &MongoUsers{col: col}, nil
}

func (s *MongoUsers) FindByID(ctx context.Context, id model.UserID) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		// a malformed id cannot name any document
		return nil, ErrNotFound
	}
	var u model.User
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, mapFindErr(err)
	}
	return &u, nil
}

func (s *MongoUsers) FindByUsername(ctx context.Context, username model.Username) (*model.User, error) {
	var u model.User
	if err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, mapFindErr(err)
	}
	return &u, nil
}

func (s *MongoUsers) FindAll(ctx context.Context) ([]model.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUsers) Insert(ctx context.Context, u *model.User) (model.UserID, error) {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	u.ID = oid
	return model.UserID(oid.Hex()), nil
}

func (s *MongoUsers) SetField(ctx context.Context, id model.UserID, field string, value any) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return 0, ErrNotFound
	}
	res, err := s.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoUsers) PushToField(ctx context.Context, id model.UserID, field string, value any) error {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return ErrNotFound
	}
	_, err = s.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{field: value}})
	return err
}

func (s *MongoUsers) SetPostField(ctx context.Context, owner model.Username, imageURL, field string, value any) (int64, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"username": owner, "posts.imageUrl": imageURL},
		bson.M{"$set": bson.M{"posts.$." + field: value}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoUsers) SetCommentField(ctx context.Context, owner model.Username, imageURL, commentID, field string, value any) (int64, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"username": owner, "posts.imageUrl": imageURL},
		bson.M{"$set": bson.M{"posts.$[p].comments.$[c]." + field: value}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"p.imageUrl": imageURL},
				bson.M{"c.id": commentID},
			},
		}),
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// MongoChats implements ChatStore on the messages collection.
type MongoChats struct {
	col *mongo.Collection
}

func NewMongoChats(db *mongo.Database) *MongoChats {
	return &MongoChats{col: db.Collection("messages")}
}

func (s *MongoChats) Insert(ctx context.Context, members []model.UserID) (string, error) {
	res, err := s.col.InsertOne(ctx, bson.M{"members": members})
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoChats) FindAll(ctx context.Context) ([]model.Chat, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var chats []model.Chat
	if err := cur.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func mapFindErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}
