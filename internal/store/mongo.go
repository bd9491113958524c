package store

import (
	"context"
	"fmt"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/ppiankov/wikibio/internal/model"
)

// Records are looked up by name, so index it; sparse since many infoboxes lack one
var nameIndex = mgo.Index{
	Key:        []string{"name"},
	Background: true,
	Sparse:     true,
}

// inserter is the subset of *mgo.Collection used for loading
type inserter interface {
	Insert(docs ...interface{}) error
}

// MongoSink inserts one document per record
type MongoSink struct {
	session *mgo.Session
	coll    inserter
	schema  model.Schema
}

// DialMongo connects and ensures the name index on the collection
func DialMongo(url, database, collection string, schema model.Schema) (*MongoSink, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial mongo: %w", err)
	}

	c := session.DB(database).C(collection)
	if err := c.EnsureIndex(nameIndex); err != nil {
		session.Close()
		return nil, fmt.Errorf("ensure name index: %w", err)
	}

	return &MongoSink{session: session, coll: c, schema: schema}, nil
}

// Name returns "mongo"
func (s *MongoSink) Name() string {
	return "mongo"
}

// Document renders a record in schema column order, omitting missing values
func Document(schema model.Schema, rec model.Record) bson.D {
	doc := bson.D{}
	for _, col := range schema.Columns() {
		if v, ok := rec.Get(col); ok {
			doc = append(doc, bson.DocElem{Name: col, Value: v})
		}
	}
	return doc
}

// Insert writes one batch in a single call
func (s *MongoSink) Insert(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = Document(s.schema, rec)
	}

	if err := s.coll.Insert(docs...); err != nil {
		return fmt.Errorf("insert %d documents: %w", len(docs), err)
	}
	return nil
}

// Close ends the session
func (s *MongoSink) Close() error {
	if s.session != nil {
		s.session.Close()
	}
	return nil
}
