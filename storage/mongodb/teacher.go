package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dottech/backend/core/teacher"
)

type teacherModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m teacherModel) toTeacher() teacher.Teacher {
	return teacher.Teacher{
		ID:        m.ID.Hex(),
		UserID:    m.UserID.Hex(),
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

type teacherRepository struct {
	coll *mongo.Collection
}

func NewTeacherRepository(db *mongo.Database) teacher.Repository {
	return &teacherRepository{coll: db.Collection(teachersCollection)}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	userOID, err := primitive.ObjectIDFromHex(tch.UserID)
	if err != nil {
		return teacher.Teacher{}, err
	}

	model := teacherModel{
		ID:        primitive.NewObjectID(),
		UserID:    userOID,
		FirstName: tch.FirstName,
		LastName:  tch.LastName,
		Email:     tch.Email,
		CreatedAt: tch.CreatedAt,
	}
	if _, err = repo.coll.InsertOne(ctx, model); err != nil {
		return teacher.Teacher{}, err
	}
	return model.toTeacher(), nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	teachers := make([]teacher.Teacher, 0)
	for cur.Next(ctx) {
		var model teacherModel
		if err = cur.Decode(&model); err != nil {
			return nil, err
		}
		teachers = append(teachers, model.toTeacher())
	}
	return teachers, cur.Err()
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return teacher.Teacher{}, teacher.ErrNotFound
	}

	var model teacherModel
	if err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&model); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, err
	}
	return model.toTeacher(), nil
}
