package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/donation-inventory/api/internal/donation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterKey = "donations"

// MongoRepo implements the donation store on a MongoDB database.
// Integer ids come from an atomic counter document in the "counters"
// collection so they keep the auto-increment contract of the sql store.
type MongoRepo struct {
	client   *mongo.Client
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepo(ctx context.Context, client *mongo.Client, database string) (*MongoRepo, error) {
	db := client.Database(database)
	col := db.Collection("donations")
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "donor_name", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idxModel); err != nil {
		return nil, fmt.Errorf("create donor_name index: %w", err)
	}
	return &MongoRepo{client: client, col: col, counters: db.Collection("counters")}, nil
}

func (m *MongoRepo) Name() string { return "mongo" }

// Session starts a driver session; every operation of the returned
// Session runs inside it until Close ends it.
func (m *MongoRepo) Session(ctx context.Context) (Session, error) {
	sess, err := m.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start mongo session: %w", err)
	}
	return &mongoSession{repo: m, sess: sess}, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoSession struct {
	repo *MongoRepo
	sess mongo.Session
}

func (s *mongoSession) Close() {
	s.sess.EndSession(context.Background())
}

func (s *mongoSession) bind(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, s.sess)
}

func (s *mongoSession) List(ctx context.Context) ([]*donation.Donation, error) {
	ctx = s.bind(ctx)
	cur, err := s.repo.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer cur.Close(ctx)
	out := []*donation.Donation{}
	for cur.Next(ctx) {
		var d donation.Donation
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		d.Date = donation.NormalizeDate(d.Date)
		out = append(out, &d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoSession) Get(ctx context.Context, id int64) (*donation.Donation, error) {
	var d donation.Donation
	err := s.repo.col.FindOne(s.bind(ctx), bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get donation %d: %w", id, err)
	}
	d.Date = donation.NormalizeDate(d.Date)
	return &d, nil
}

func (s *mongoSession) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.repo.counters.FindOneAndUpdate(ctx, bson.M{"_id": counterKey}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next donation id: %w", err)
	}
	return counter.Seq, nil
}

func (s *mongoSession) Create(ctx context.Context, d *donation.Donation) error {
	ctx = s.bind(ctx)
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	d.ID = id
	if _, err := s.repo.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (s *mongoSession) Save(ctx context.Context, d *donation.Donation) error {
	res, err := s.repo.col.ReplaceOne(s.bind(ctx), bson.M{"_id": d.ID}, d)
	if err != nil {
		return fmt.Errorf("save donation %d: %w", d.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoSession) Delete(ctx context.Context, id int64) error {
	res, err := s.repo.col.DeleteOne(s.bind(ctx), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete donation %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
