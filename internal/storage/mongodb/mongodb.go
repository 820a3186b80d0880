package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/airwavefm/radio-backend/internal/storage"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// Store implements MongoDB storage
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	cfg      *config.MongoDBConfig

	users     *UserStore
	stations  *StationStore
	artists   *ArtistStore
	songs     *SongStore
	playlists *PlaylistStore
	schedules *ScheduleStore
}

// NewStore creates a new MongoDB store
func NewStore(ctx context.Context, cfg *config.MongoDBConfig) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(time.Duration(cfg.Timeout) * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)

	s := &Store{
		client:   client,
		database: database,
		cfg:      cfg,
	}

	// Initialize sub-stores
	s.users = &UserStore{collection: database.Collection("users")}
	s.stations = &StationStore{collection: database.Collection("stations")}
	s.artists = &ArtistStore{collection: database.Collection("artists")}
	s.songs = &SongStore{collection: database.Collection("songs")}
	s.playlists = &PlaylistStore{collection: database.Collection("playlists")}
	s.schedules = &ScheduleStore{collection: database.Collection("schedule")}

	// Create indexes
	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	// Users collection indexes
	_, err := s.users.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	// Stations collection indexes
	_, err = s.stations.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create station indexes: %w", err)
	}

	// Songs collection indexes
	_, err = s.songs.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "station_id", Value: 1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create song indexes: %w", err)
	}

	// Schedule collection indexes
	_, err = s.schedules.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "dj_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}

	return nil
}

func (s *Store) Users() storage.UserStore         { return s.users }
func (s *Store) Stations() storage.StationStore   { return s.stations }
func (s *Store) Artists() storage.ArtistStore     { return s.artists }
func (s *Store) Songs() storage.SongStore         { return s.songs }
func (s *Store) Playlists() storage.PlaylistStore { return s.playlists }
func (s *Store) Schedules() storage.ScheduleStore { return s.schedules }

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
