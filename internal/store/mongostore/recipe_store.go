package mongostore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

const (
	recipeCollection = "recipes"
	userCollection   = "users"
)

// recipeDocument is the persisted shape of a recipe; ids are stored as strings
type recipeDocument struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	Ingredients   string    `bson:"ingredients"`
	Instructions  string    `bson:"instructions"`
	Description   string    `bson:"description"`
	Image         string    `bson:"image"`
	Owner         string    `bson:"owner"`
	RecommendList []string  `bson:"recommendList"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// Store implements store.Store on a MongoDB database
type Store struct {
	client  *mongo.Client
	recipes *mongo.Collection
	users   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New uses the named database of a connected client
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:  client,
		recipes: db.Collection(recipeCollection),
		users:   db.Collection(userCollection),
	}
}

// EnsureIndexes creates the indexes the queries rely on
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.recipes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "recommendList", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var doc recipeDocument
	err := s.recipes.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel()
}

func (s *Store) List(ctx context.Context) ([]*model.Recipe, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error) {
	return s.find(ctx, bson.M{"owner": ownerID.String()}, newestFirst())
}

func (s *Store) LastN(ctx context.Context, n int) ([]*model.Recipe, error) {
	if n <= 0 {
		return []*model.Recipe{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(n))
	return s.find(ctx, bson.M{}, opts)
}

func (s *Store) MostPopular(ctx context.Context) ([]*model.Recipe, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"popularity": bson.M{"$size": bson.M{"$ifNull": bson.A{"$recommendList", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "popularity", Value: -1},
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cursor, err := s.recipes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

func (s *Store) Search(ctx context.Context, term string) ([]*model.Recipe, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"ingredients": pattern},
		bson.M{"instructions": pattern},
		bson.M{"description": pattern},
	}}
	return s.find(ctx, filter, newestFirst())
}

func (s *Store) Insert(ctx context.Context, recipe *model.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := time.Now().UTC()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now
	recipe.RecommendList = []uuid.UUID{}

	_, err := s.recipes.InsertOne(ctx, fromModel(recipe))
	return err
}

func (s *Store) UpdateFields(ctx context.Context, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	update := bson.M{"$set": bson.M{
		"title":        fields.Title,
		"ingredients":  fields.Ingredients,
		"instructions": fields.Instructions,
		"description":  fields.Description,
		"image":        fields.Image,
		"updatedAt":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc recipeDocument
	err := s.recipes.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel()
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.recipes.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AddRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": recipeID.String()},
		bson.M{"$addToSet": bson.M{"recommendList": userID.String()}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, store.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (s *Store) RemoveRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": recipeID.String()},
		bson.M{"$pull": bson.M{"recommendList": userID.String()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (s *Store) IsRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	n, err := s.recipes.CountDocuments(ctx, bson.M{
		"_id":           recipeID.String(),
		"recommendList": userID.String(),
	})
	return n > 0, err
}

func (s *Store) ListRecommendedBy(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	return s.find(ctx, bson.M{"recommendList": userID.String()}, newestFirst())
}

func (s *Store) CountRecommendedBy(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.recipes.CountDocuments(ctx, bson.M{
		"recommendList": userID.String(),
		"owner":         bson.M{"$ne": userID.String()},
	})
}

func (s *Store) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]*model.Recipe, error) {
	cursor, err := s.recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*model.Recipe, error) {
	defer cursor.Close(ctx)

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	recipes := make([]*model.Recipe, 0, len(docs))
	for i := range docs {
		recipe, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func fromModel(r *model.Recipe) recipeDocument {
	list := make([]string, len(r.RecommendList))
	for i, id := range r.RecommendList {
		list[i] = id.String()
	}
	return recipeDocument{
		ID:            r.ID.String(),
		Title:         r.Title,
		Ingredients:   r.Ingredients,
		Instructions:  r.Instructions,
		Description:   r.Description,
		Image:         r.Image,
		Owner:         r.OwnerID.String(),
		RecommendList: list,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (d *recipeDocument) toModel() (*model.Recipe, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return nil, err
	}

	list := make([]uuid.UUID, 0, len(d.RecommendList))
	for _, raw := range d.RecommendList {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, userID)
	}

	return &model.Recipe{
		ID:            id,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Title:         d.Title,
		Ingredients:   d.Ingredients,
		Instructions:  d.Instructions,
		Description:   d.Description,
		Image:         d.Image,
		OwnerID:       owner,
		RecommendList: list,
	}, nil
}
