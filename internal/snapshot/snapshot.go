// Package snapshot persists KnowledgeStore snapshots to MongoDB, giving
// the engine export_snapshot/import_snapshot operations backed by durable
// storage instead of the in-memory store alone.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qaengine/internal/knowledge"
)

// document is the BSON shape a knowledge.Node is persisted as. Node's own
// content-addressed ID doubles as the document key so re-importing the
// same node is a no-op rather than a duplicate.
type document struct {
	ID              string    `bson:"_id"`
	Domain          string    `bson:"domain"`
	Topic           string    `bson:"topic"`
	Content         string    `bson:"content"`
	Confidence      float64   `bson:"confidence"`
	RelatedConcepts []string  `bson:"relatedConcepts,omitempty"`
	UsageCount      uint64    `bson:"usageCount"`
	LastAccessed    time.Time `bson:"lastAccessed"`
}

// Store persists KnowledgeStore snapshots in a single MongoDB collection.
type Store struct {
	collection *mongo.Collection
}

// New wraps db's "knowledge_snapshots" collection, creating the indexes a
// persistence collaborator needs: a domain index for scoped reloads and a
// text index over topic/content for operator debugging.
func New(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{collection: db.Collection("knowledge_snapshots")}

	if _, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "domain", Value: 1}},
	}); err != nil {
		return nil, fmt.Errorf("snapshot: failed to create domain index: %w", err)
	}

	if _, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "topic", Value: "text"}, {Key: "content", Value: "text"}},
	}); err != nil {
		return nil, fmt.Errorf("snapshot: failed to create text index: %w", err)
	}

	return s, nil
}

// Export writes every node in snap to MongoDB, upserting by content-addressed
// ID so a re-export after incremental learning only touches changed or new
// nodes.
func (s *Store) Export(ctx context.Context, snap knowledge.Snapshot) error {
	for _, n := range snap.Nodes {
		doc := document{
			ID:              n.ID,
			Domain:          string(n.Domain),
			Topic:           n.Topic,
			Content:         n.Content,
			Confidence:      n.Confidence,
			RelatedConcepts: n.RelatedConcepts,
			UsageCount:      n.UsageCount,
			LastAccessed:    n.LastAccessed,
		}
		filter := bson.M{"_id": doc.ID}
		update := bson.M{"$set": doc}
		opts := options.Update().SetUpsert(true)
		if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("snapshot: failed to upsert node %s: %w", doc.ID, err)
		}
	}
	return nil
}

// Import reads every stored node back into a knowledge.Snapshot, ready to
// be handed to Store.Load on startup.
func (s *Store) Import(ctx context.Context) (knowledge.Snapshot, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return knowledge.Snapshot{}, fmt.Errorf("snapshot: failed to query nodes: %w", err)
	}
	defer cursor.Close(ctx)

	var nodes []knowledge.Node
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return knowledge.Snapshot{}, fmt.Errorf("snapshot: failed to decode node: %w", err)
		}
		nodes = append(nodes, knowledge.Node{
			ID:              doc.ID,
			Domain:          knowledge.Domain(doc.Domain),
			Topic:           doc.Topic,
			Content:         doc.Content,
			Confidence:      doc.Confidence,
			RelatedConcepts: doc.RelatedConcepts,
			UsageCount:      doc.UsageCount,
			LastAccessed:    doc.LastAccessed,
		})
	}
	if err := cursor.Err(); err != nil {
		return knowledge.Snapshot{}, fmt.Errorf("snapshot: cursor error: %w", err)
	}

	return knowledge.Snapshot{Nodes: nodes}, nil
}

// ImportInto loads every stored node directly into store, the operation
// behind import_snapshot.
func (s *Store) ImportInto(ctx context.Context, store *knowledge.Store) error {
	snap, err := s.Import(ctx)
	if err != nil {
		return err
	}
	return store.Load(snap)
}

// ExportFrom reads store's current contents and persists them, the
// operation behind export_snapshot.
func (s *Store) ExportFrom(ctx context.Context, store *knowledge.Store) error {
	return s.Export(ctx, store.Export())
}
