package dataset

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dashweave/dashweave/pkg/errors"
)

// Mongo is a Source backed by a MongoDB collection.
//
// Documents are flattened into a rectangular table: the column set is the
// sorted union of top-level field names across all fetched documents
// (excluding "_id"), and missing fields become empty cells. Nested values
// are stringified with fmt.Sprint.
type Mongo struct {
	DatasetName string
	URI         string
	Database    string
	Collection  string

	// Limit caps the number of documents fetched. Zero means no limit.
	Limit int64
}

// Name returns the dataset name.
func (s *Mongo) Name() string { return s.DatasetName }

// Origin returns the database and collection the source reads from.
// The URI is deliberately excluded so credentials never leak into cache
// keys or error messages.
func (s *Mongo) Origin() string {
	return fmt.Sprintf("mongo:%s/%s", s.Database, s.Collection)
}

// Load connects, fetches the documents, and flattens them into a dataset.
func (s *Mongo) Load(ctx context.Context) (*Dataset, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: connect to MongoDB", s.DatasetName)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	findOpts := options.Find()
	if s.Limit > 0 {
		findOpts.SetLimit(s.Limit)
	}

	cur, err := client.Database(s.Database).Collection(s.Collection).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: query %s", s.DatasetName, s.Origin())
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: read cursor", s.DatasetName)
	}

	return flattenDocs(s.DatasetName, docs), nil
}

// flattenDocs converts a slice of documents into a rectangular dataset.
func flattenDocs(name string, docs []bson.M) *Dataset {
	colSet := make(map[string]struct{})
	for _, doc := range docs {
		for field := range doc {
			if field == "_id" {
				continue
			}
			colSet[field] = struct{}{}
		}
	}

	columns := make([]string, 0, len(colSet))
	for field := range colSet {
		columns = append(columns, field)
	}
	sort.Strings(columns)

	rows := make([][]string, len(docs))
	for i, doc := range docs {
		row := make([]string, len(columns))
		for j, col := range columns {
			if v, ok := doc[col]; ok && v != nil {
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}

	return &Dataset{Name: name, Columns: columns, Rows: rows}
}
