package io

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/eleitos/pkg/candidate"
)

const (
	DefaultMongoDatabase   = "eleitos"
	DefaultMongoCollection = "candidatos"
)

// MongoSink upserts records into a MongoDB collection.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSink connects to uri and verifies the connection. Empty database
// or collection names fall back to the defaults.
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoSink{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// Upsert stores records keyed by ballot name and municipality code and
// returns how many documents were inserted or modified.
func (s *MongoSink) Upsert(ctx context.Context, records []candidate.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, 0, len(records))
	for _, r := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "ballot_name", Value: r.BallotName}, {Key: "municipality_code", Value: r.MunicipalityCode}}).
			SetReplacement(document(r)).
			SetUpsert(true))
	}
	res, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("upsert candidates: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount), nil
}

// Find returns the stored records of one municipality.
func (s *MongoSink) Find(ctx context.Context, municipalityCode string) ([]candidate.Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "municipality_code", Value: municipalityCode}})
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cur.Close(ctx)

	var records []candidate.Record
	for cur.Next(ctx) {
		var d mongoRecord
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
		records = append(records, d.record())
	}
	return records, cur.Err()
}

// Close disconnects the client.
func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoRecord struct {
	FullName         string `bson:"full_name"`
	BallotName       string `bson:"ballot_name"`
	BallotNumber     int    `bson:"ballot_number"`
	Party            string `bson:"party"`
	Office           string `bson:"office"`
	OfficeCode       int    `bson:"office_code"`
	MunicipalityCode string `bson:"municipality_code"`
	Reelection       bool   `bson:"reelection"`
	PhotoURL         string `bson:"photo_url"`
}

func document(r candidate.Record) mongoRecord {
	return mongoRecord{
		FullName:         r.FullName,
		BallotName:       r.BallotName,
		BallotNumber:     r.BallotNumber,
		Party:            r.Party,
		Office:           r.Office,
		OfficeCode:       int(r.OfficeCode),
		MunicipalityCode: r.MunicipalityCode,
		Reelection:       bool(r.Reelection),
		PhotoURL:         r.PhotoURL,
	}
}

func (d mongoRecord) record() candidate.Record {
	return candidate.Record{
		FullName:         d.FullName,
		BallotName:       d.BallotName,
		BallotNumber:     d.BallotNumber,
		Party:            d.Party,
		Office:           d.Office,
		OfficeCode:       candidate.Office(d.OfficeCode),
		MunicipalityCode: d.MunicipalityCode,
		Reelection:       candidate.YesNo(d.Reelection),
		PhotoURL:         d.PhotoURL,
	}
}
