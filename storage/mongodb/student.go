package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dottech/backend/core/student"
)

type (
	marksModel struct {
		Mathematics     *float64 `bson:"mathematics"`
		Science         *float64 `bson:"science"`
		English         *float64 `bson:"english"`
		History         *float64 `bson:"history"`
		Geography       *float64 `bson:"geography"`
		ComputerScience *float64 `bson:"computerScience"`
		Physics         *float64 `bson:"physics"`
		Chemistry       *float64 `bson:"chemistry"`
		Biology         *float64 `bson:"biology"`
	}

	studentModel struct {
		ID             primitive.ObjectID `bson:"_id,omitempty"`
		UserID         primitive.ObjectID `bson:"user_id"`
		FirstName      string             `bson:"first_name"`
		LastName       string             `bson:"last_name"`
		Email          string             `bson:"email"`
		Age            int                `bson:"age"`
		ProfilePicture string             `bson:"profile_picture,omitempty"`
		Marks          marksModel         `bson:"marks"`
		CreatedAt      time.Time          `bson:"created_at"`
	}
)

func newMarksModel(m student.Marks) marksModel {
	return marksModel{
		Mathematics:     m.Mathematics,
		Science:         m.Science,
		English:         m.English,
		History:         m.History,
		Geography:       m.Geography,
		ComputerScience: m.ComputerScience,
		Physics:         m.Physics,
		Chemistry:       m.Chemistry,
		Biology:         m.Biology,
	}
}

func (m marksModel) toMarks() student.Marks {
	return student.Marks{
		Mathematics:     m.Mathematics,
		Science:         m.Science,
		English:         m.English,
		History:         m.History,
		Geography:       m.Geography,
		ComputerScience: m.ComputerScience,
		Physics:         m.Physics,
		Chemistry:       m.Chemistry,
		Biology:         m.Biology,
	}
}

func (m studentModel) toStudent() student.Student {
	return student.Student{
		ID:             m.ID.Hex(),
		UserID:         m.UserID.Hex(),
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Age:            m.Age,
		ProfilePicture: m.ProfilePicture,
		Marks:          m.Marks.toMarks(),
		CreatedAt:      m.CreatedAt,
	}
}

type studentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) student.Repository {
	return &studentRepository{coll: db.Collection(studentsCollection)}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	userOID, err := primitive.ObjectIDFromHex(std.UserID)
	if err != nil {
		return student.Student{}, err
	}

	model := studentModel{
		ID:        primitive.NewObjectID(),
		UserID:    userOID,
		FirstName: std.FirstName,
		LastName:  std.LastName,
		Email:     std.Email,
		Age:       std.Age,
		Marks:     newMarksModel(std.Marks),
		CreatedAt: std.CreatedAt,
	}
	if _, err = repo.coll.InsertOne(ctx, model); err != nil {
		return student.Student{}, err
	}
	return model.toStudent(), nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	students := make([]student.Student, 0)
	for cur.Next(ctx) {
		var model studentModel
		if err = cur.Decode(&model); err != nil {
			return nil, err
		}
		students = append(students, model.toStudent())
	}
	return students, cur.Err()
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.Student{}, student.ErrNotFound
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

func (repo *studentRepository) GetStudentByUserID(ctx context.Context, userID string) (student.Student, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return student.Student{}, student.ErrNotFound
	}
	return repo.findOne(ctx, bson.M{"user_id": oid})
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	oid, err := primitive.ObjectIDFromHex(std.ID)
	if err != nil {
		return student.Student{}, student.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"first_name": std.FirstName,
		"last_name":  std.LastName,
		"email":      std.Email,
		"age":        std.Age,
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return student.Student{}, err
	}
	if res.MatchedCount == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

func (repo *studentRepository) SetMarks(ctx context.Context, id string, marks student.Marks) (student.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.Student{}, student.ErrNotFound
	}

	update := bson.M{"$set": bson.M{"marks": newMarksModel(marks)}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return student.Student{}, err
	}
	if res.MatchedCount == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

func (repo *studentRepository) SetProfilePicture(ctx context.Context, id, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.ErrNotFound
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"profile_picture": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.ErrNotFound
	}

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) findOne(ctx context.Context, filter bson.M) (student.Student, error) {
	var model studentModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&model); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return model.toStudent(), nil
}
