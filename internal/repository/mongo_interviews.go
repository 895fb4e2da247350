package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// MongoInterviewRepo implements InterviewRepository over the jd_questions,
// interview_user, and interview_responses collections.
type MongoInterviewRepo struct {
	jds         *mongo.Collection
	assignments *mongo.Collection
	responses   *mongo.Collection
}

// NewMongoInterviewRepo constructs the interview repository.
func NewMongoInterviewRepo(db *mongo.Database) *MongoInterviewRepo {
	return &MongoInterviewRepo{
		jds:         db.Collection(collJDs),
		assignments: db.Collection(collAssignments),
		responses:   db.Collection(collResponses),
	}
}

var _ InterviewRepository = (*MongoInterviewRepo)(nil)

func (r *MongoInterviewRepo) InsertJD(ctx context.Context, jd domain.JobDescription) (bson.ObjectID, error) {
	res, err := r.jds.InsertOne(ctx, jd)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert job description: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("insert job description: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *MongoInterviewRepo) FindJD(ctx context.Context, id bson.ObjectID) (domain.JobDescription, error) {
	var jd domain.JobDescription
	err := r.jds.FindOne(ctx, bson.M{"_id": id}).Decode(&jd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.JobDescription{}, domain.ErrNotFound
		}
		return domain.JobDescription{}, fmt.Errorf("find job description: %w", err)
	}
	return jd, nil
}

func (r *MongoInterviewRepo) ListJDs(ctx context.Context) ([]domain.JobDescription, error) {
	cursor, err := r.jds.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"job_description": 1}))
	if err != nil {
		return nil, fmt.Errorf("list job descriptions: %w", err)
	}
	var jds []domain.JobDescription
	if err := cursor.All(ctx, &jds); err != nil {
		return nil, fmt.Errorf("decode job descriptions: %w", err)
	}
	return jds, nil
}

func (r *MongoInterviewRepo) InsertAssignment(ctx context.Context, a domain.InterviewAssignment) (bson.ObjectID, error) {
	res, err := r.assignments.InsertOne(ctx, a)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert assignment: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("insert assignment: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

// FindAssignmentAccess looks up an assignment by id and access credentials,
// exactly as the candidate entry form submits them.
func (r *MongoInterviewRepo) FindAssignmentAccess(ctx context.Context, id bson.ObjectID, username, password string) (domain.InterviewAssignment, error) {
	var a domain.InterviewAssignment
	err := r.assignments.FindOne(ctx, bson.M{
		"_id":         id,
		"assigned_to": username,
		"password":    password,
	}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.InterviewAssignment{}, domain.ErrNotFound
		}
		return domain.InterviewAssignment{}, fmt.Errorf("find assignment: %w", err)
	}
	return a, nil
}

func (r *MongoInterviewRepo) InsertResponse(ctx context.Context, resp domain.InterviewResponse) error {
	if _, err := r.responses.InsertOne(ctx, resp); err != nil {
		return fmt.Errorf("insert interview response: %w", err)
	}
	return nil
}

func (r *MongoInterviewRepo) FindResponseByEmail(ctx context.Context, email string) (domain.InterviewResponse, error) {
	var resp domain.InterviewResponse
	err := r.responses.FindOne(ctx, bson.M{"candidate_email": email}).Decode(&resp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.InterviewResponse{}, domain.ErrNotFound
		}
		return domain.InterviewResponse{}, fmt.Errorf("find interview response: %w", err)
	}
	return resp, nil
}

func (r *MongoInterviewRepo) ListResponses(ctx context.Context) ([]domain.InterviewResponse, error) {
	cursor, err := r.responses.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.M{"candidate_email": 1, "job_description": 1}))
	if err != nil {
		return nil, fmt.Errorf("list interview responses: %w", err)
	}
	var responses []domain.InterviewResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("decode interview responses: %w", err)
	}
	return responses, nil
}
