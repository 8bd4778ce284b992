package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
)

const sessionCollection = "sessions"

// sessionDoc is the persisted shape of a session. Domain types stay free of
// storage concerns; this adapter owns the bson mapping.
type sessionDoc struct {
	OID          primitive.ObjectID `bson:"_id,omitempty"`
	SessionID    string             `bson:"sessionID"`
	Title        string             `bson:"title"`
	Conversation []messageDoc       `bson:"conversation"`
}

type messageDoc struct {
	ID     string    `bson:"id"`
	Sender string    `bson:"sender"`
	Time   time.Time `bson:"time"`
	Text   string    `bson:"message"`
}

// MongoStore persists sessions in a single MongoDB collection with a unique
// index on sessionID.
type MongoStore struct {
	sessions *mongo.Collection
}

// NewMongoStore connects, verifies the server is reachable and ensures the
// sessionID uniqueness index.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(sessionCollection)
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure sessionID index: %w", err)
	}

	return &MongoStore{sessions: coll}, nil
}

// Close releases the underlying client connections.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.sessions.Database().Client().Disconnect(ctx)
}

func (s *MongoStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.sessions.CountDocuments(ctx, bson.M{"sessionID": sessionID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count sessions: %w", err)
	}
	return n > 0, nil
}

func (s *MongoStore) Create(ctx context.Context, sess session.Session) (session.Session, error) {
	sess.Conversation = stampMessages(sess.Conversation)

	if _, err := s.sessions.InsertOne(ctx, toDoc(sess)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return session.Session{}, ErrSessionExists
		}
		return session.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *MongoStore) Get(ctx context.Context, sessionID string) (session.Session, error) {
	var doc sessionDoc
	err := s.sessions.FindOne(ctx, bson.M{"sessionID": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return session.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("find session: %w", err)
	}
	return fromDoc(doc), nil
}

func (s *MongoStore) List(ctx context.Context) ([]session.Session, error) {
	cursor, err := s.sessions.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	sessions := make([]session.Session, 0, len(docs))
	for _, doc := range docs {
		sessions = append(sessions, fromDoc(doc))
	}
	return sessions, nil
}

func (s *MongoStore) ReplaceMessages(ctx context.Context, sessionID string, messages []session.Message) (session.Session, error) {
	stamped := stampMessages(messages)
	docs := make([]messageDoc, 0, len(stamped))
	for _, m := range stamped {
		docs = append(docs, toMessageDoc(m))
	}

	var doc sessionDoc
	err := s.sessions.FindOneAndUpdate(ctx,
		bson.M{"sessionID": sessionID},
		bson.M{"$set": bson.M{"conversation": docs}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return session.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("replace messages: %w", err)
	}
	return fromDoc(doc), nil
}

func (s *MongoStore) Delete(ctx context.Context, sessionID string) error {
	res, err := s.sessions.DeleteOne(ctx, bson.M{"sessionID": sessionID})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func toDoc(s session.Session) sessionDoc {
	msgs := make([]messageDoc, 0, len(s.Conversation))
	for _, m := range s.Conversation {
		msgs = append(msgs, toMessageDoc(m))
	}
	return sessionDoc{
		SessionID:    s.SessionID,
		Title:        s.Title,
		Conversation: msgs,
	}
}

func toMessageDoc(m session.Message) messageDoc {
	return messageDoc{
		ID:     m.ID,
		Sender: string(m.Sender),
		Time:   m.Time,
		Text:   m.Text,
	}
}

func fromDoc(doc sessionDoc) session.Session {
	msgs := make([]session.Message, 0, len(doc.Conversation))
	for _, m := range doc.Conversation {
		msgs = append(msgs, session.Message{
			ID:     m.ID,
			Sender: session.Sender(m.Sender),
			Time:   m.Time,
			Text:   m.Text,
		})
	}
	return session.Session{
		SessionID:    doc.SessionID,
		Title:        doc.Title,
		Conversation: msgs,
	}
}
