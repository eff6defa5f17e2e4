package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"igcadmin/entity"
	"igcadmin/internal/config"
)

const (
	collectionAdmins   = "users"
	collectionTeams    = "teamregistrations"
	collectionCounters = "counters"

	// counterTeams is the _id of the counter document backing identifier
	// assignment. One atomic $inc per registration replaces the legacy
	// count-plus-one scheme while keeping the same sequential numbering.
	counterTeams = "team_registration"
)

type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) *MongoDB {
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	return &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(context.Background())
}

// GetAdmin looks up an administrator account by username.
func (m *MongoDB) GetAdmin(ctx context.Context, username string) (*entity.Administrator, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAdmins)
	filter := bson.D{{Key: "username", Value: username}}
	var admin entity.Administrator
	err = collection.FindOne(ctx, filter).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: administrator %s", entity.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find administrator: %v", entity.ErrPersistence, err)
	}
	return &admin, nil
}

// UpsertAdmin creates or replaces an administrator account. Used by the
// seed path in cmd/server only.
func (m *MongoDB) UpsertAdmin(ctx context.Context, admin *entity.Administrator) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAdmins)
	filter := bson.D{{Key: "username", Value: admin.Username}}
	// _id is immutable, so it only applies on insert
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "password", Value: admin.PasswordHash}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: admin.Id}}},
	}
	opts := options.Update().SetUpsert(true)
	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("%w: upsert administrator: %v", entity.ErrPersistence, err)
	}
	return nil
}

// GetTeamByName returns the registration with the given team name.
func (m *MongoDB) GetTeamByName(ctx context.Context, teamName string) (*entity.TeamRegistration, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionTeams)
	filter := bson.D{{Key: "teamName", Value: teamName}}
	var team entity.TeamRegistration
	err = collection.FindOne(ctx, filter).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: team %s", entity.ErrNotFound, teamName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find team: %v", entity.ErrPersistence, err)
	}
	return &team, nil
}

// GetTeams returns all registrations, newest submissions first.
func (m *MongoDB) GetTeams(ctx context.Context) ([]*entity.TeamRegistration, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionTeams)
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find teams: %v", entity.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var teams []*entity.TeamRegistration
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("%w: decode teams: %v", entity.ErrPersistence, err)
	}
	return teams, nil
}

func (m *MongoDB) InsertTeam(ctx context.Context, team *entity.TeamRegistration) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionTeams)
	_, err = collection.InsertOne(ctx, team)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: team %s already registered", entity.ErrConflict, team.TeamName)
	}
	if err != nil {
		return fmt.Errorf("%w: insert team: %v", entity.ErrPersistence, err)
	}
	return nil
}

func (m *MongoDB) UpdateTeam(ctx context.Context, team *entity.TeamRegistration) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionTeams)
	filter := bson.D{{Key: "teamName", Value: team.TeamName}}
	update := bson.D{{Key: "$set", Value: team}}
	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: update team: %v", entity.ErrPersistence, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: team %s", entity.ErrNotFound, team.TeamName)
	}
	return nil
}

// CountTeams counts registrations in the given status; an empty status
// counts everything.
func (m *MongoDB) CountTeams(ctx context.Context, status entity.TeamStatus) (int64, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionTeams)
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "registrationStatus", Value: status}}
	}
	n, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%w: count teams: %v", entity.ErrPersistence, err)
	}
	return n, nil
}

// NextSequence atomically increments and returns the registration counter.
func (m *MongoDB) NextSequence(ctx context.Context) (int64, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionCounters)
	filter := bson.D{{Key: "_id", Value: counterTeams}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err = collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("%w: next sequence: %v", entity.ErrPersistence, err)
	}
	return doc.Seq, nil
}

// EnsureIndexes creates the unique indexes the workflow relies on:
// one registration per team name, one account per username.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)
	unique := options.Index().SetUnique(true)

	_, err = db.Collection(collectionTeams).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamName", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("team name index: %w", err)
	}
	_, err = db.Collection(collectionAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("username index: %w", err)
	}
	return nil
}
