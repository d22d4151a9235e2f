package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dottech/backend/core/user"
)

type userModel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Role         user.Role          `bson:"role"`
	PasswordHash []byte             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m userModel) toUser() user.User {
	return user.User{
		ID:           m.ID.Hex(),
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...user.User) error {
	filter := bson.M{"email": email}
	if len(excluded) > 0 {
		exclIDs := make([]primitive.ObjectID, 0, len(excluded))
		for _, usr := range excluded {
			if oid, err := primitive.ObjectIDFromHex(usr.ID); err == nil {
				exclIDs = append(exclIDs, oid)
			}
		}
		filter["_id"] = bson.M{"$nin": exclIDs}
	}

	err := repo.coll.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}
	return user.ErrEmailExists
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	model := userModel{
		ID:           primitive.NewObjectID(),
		Email:        usr.Email,
		Role:         usr.Role,
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
	}
	if _, err := repo.coll.InsertOne(ctx, model); err != nil {
		if isDupKey(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return model.toUser(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, user.ErrNotFound
	}

	var model userModel
	if err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&model); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return model.toUser(), nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var model userModel
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&model); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return model.toUser(), nil
}

func (repo *userRepository) UpdateUserEmail(ctx context.Context, id, email string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.ErrNotFound
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"email": email}})
	if err != nil {
		if isDupKey(err) {
			return user.ErrEmailExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.ErrNotFound
	}

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
