package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/portfolio-backend/internal/database"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// MongoRepository stores T documents in one collection.
type MongoRepository[T any, PT Entity[T]] struct {
	col *mongo.Collection
}

func NewMongoRepository[T any, PT Entity[T]](col *mongo.Collection) *MongoRepository[T, PT] {
	return &MongoRepository[T, PT]{col: col}
}

// NewMongoRepositories wires every collection of db.
func NewMongoRepositories(db *database.Mongo) *Repositories {
	return &Repositories{
		Users:        NewMongoUserRepository(db.Collection(database.UsersCollection)),
		Messages:     NewMongoRepository[models.Message](db.Collection(database.MessagesCollection)),
		Projects:     NewMongoRepository[models.Project](db.Collection(database.ProjectsCollection)),
		Skills:       NewMongoRepository[models.Skill](db.Collection(database.SkillsCollection)),
		Timelines:    NewMongoRepository[models.Timeline](db.Collection(database.TimelinesCollection)),
		SoftwareApps: NewMongoRepository[models.SoftwareApp](db.Collection(database.SoftwareAppsCollection)),
	}
}

func (r *MongoRepository[T, PT]) Create(ctx context.Context, doc *T) error {
	p := PT(doc)
	if p.GetID().IsZero() {
		p.SetID(primitive.NewObjectID())
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *MongoRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", r.col.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.col.Name(), err)
	}
	return docs, nil
}

func (r *MongoRepository[T, PT]) Replace(ctx context.Context, doc *T) error {
	id := PT(doc).GetID()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T, PT]) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", r.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T, PT]) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := r.col.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding in %s: %w", r.col.Name(), err)
	}
	return &doc, nil
}

// MongoUserRepository adds the identity queries on top of the generic
// repository.
type MongoUserRepository struct {
	*MongoRepository[models.User, *models.User]
}

func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{NewMongoRepository[models.User](col)}
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoUserRepository) FindFirst(ctx context.Context) (*models.User, error) {
	return r.findOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password": passwordHash}})
}

func (r *MongoUserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiresAt time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"resetPasswordToken":      tokenHash,
		"resetPasswordExpiration": expiresAt.UTC(),
	}})
}

func (r *MongoUserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, unsetResetToken())
}

func (r *MongoUserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*models.User, error) {
	filter := bson.M{
		"resetPasswordToken":      tokenHash,
		"resetPasswordExpiration": bson.M{"$gt": now.UTC()},
	}
	update := unsetResetToken()
	if passwordHash != "" {
		update["$set"] = bson.M{"password": passwordHash}
	}

	var user models.User
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consuming reset token: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func unsetResetToken() bson.M {
	return bson.M{"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpiration": ""}}
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Field: duplicateField(err)}
	}
	return fmt.Errorf("writing document: %w", err)
}

// duplicateField pulls the key name out of a server message such as
// `E11000 duplicate key error collection: PortFolio.users index: idx_email_unique dup key: { email: "a@b.c" }`.
func duplicateField(err error) string {
	msg := err.Error()
	i := strings.Index(msg, "dup key: {")
	if i < 0 {
		return "key"
	}
	rest := strings.TrimSpace(msg[i+len("dup key: {"):])
	if j := strings.Index(rest, ":"); j > 0 {
		return strings.TrimSpace(rest[:j])
	}
	return "key"
}
