package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/models"
)

// Repository defines operations on analysis data
type Repository interface {
	SaveAnalysis(ctx context.Context, analysis *models.AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error)
	GetRecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisResult, error)
	GetSiteAnalyses(ctx context.Context, website string, limit int) ([]*models.AnalysisResult, error)
	Close(ctx context.Context) error
}

// MongoRepository implements Repository interface for MongoDB
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRepository creates a new MongoDB repository
func NewMongoRepository(ctx context.Context, cfg config.MongoDBConfig) (*MongoRepository, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Check the connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	collection := client.Database(cfg.Database).Collection(cfg.CollectionName)

	// Results are looked up by website and listed by recency
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "website", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return nil, err
	}

	return &MongoRepository{
		client:     client,
		collection: collection,
	}, nil
}

// SaveAnalysis saves an analysis result to MongoDB
func (r *MongoRepository) SaveAnalysis(ctx context.Context, analysis *models.AnalysisResult) error {
	// Set creation time if not set
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, analysis)
	if err != nil {
		return err
	}

	// Update ID in the analysis object
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		analysis.ID = oid
	}

	return nil
}

// GetAnalysis retrieves an analysis by ID
func (r *MongoRepository) GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var analysis models.AnalysisResult
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&analysis)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found
		}
		return nil, err
	}

	return &analysis, nil
}

// GetRecentAnalyses retrieves the most recent analyses
func (r *MongoRepository) GetRecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisResult, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var analyses []*models.AnalysisResult
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}

	return analyses, nil
}

// GetSiteAnalyses retrieves the analysis history for one website
func (r *MongoRepository) GetSiteAnalyses(ctx context.Context, website string, limit int) ([]*models.AnalysisResult, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"website": website}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var analyses []*models.AnalysisResult
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}

	return analyses, nil
}

// Close closes the MongoDB connection
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
