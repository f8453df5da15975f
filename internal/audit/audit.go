package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const operationTimeout = 3 * time.Second

var client Logger

// Log records an audit entry when an audit backend has been
// initialised; callers treat failures as non-fatal
func Log(entry LogEntry) error {
	if client == nil {
		logrus.Debugf("audit.Log called without a valid logger")
		return ErrorNotInitialized
	}
	return client.Log(entry)
}

// GetByEntity returns entries for the given entity at or before
// `cursor`, most recent first
func GetByEntity(entityId string, entityType EntityType, cursor time.Time, limit int64) (LogEntries, error) {
	if client == nil {
		logrus.Debugf("audit.GetByEntity called without a valid logger")
		return nil, ErrorNotInitialized
	}
	return client.GetByEntity(entityId, entityType, cursor, limit)
}

func InitMongo(c *mongo.Client) error {
	if c == nil {
		return fmt.Errorf("failed to receive a mongo client")
	}
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := c.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}
	client = &mongoAuditor{Db: c.Database("reportdesk_audit")}
	return nil
}

// mongoAuditor persists entries into a collection per entity type so
// user trails and group trails stay separately queryable
type mongoAuditor struct {
	Db *mongo.Database
}

func (m *mongoAuditor) Log(entry LogEntry) error {
	entry.Timestamp = time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()
	inserted, err := m.Db.
		Collection(string(entry.EntityType)).
		InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	logrus.Debugf("inserted audit entry[%v]", inserted.InsertedID)
	return nil
}

func (m *mongoAuditor) GetByEntity(entityId string, entityType EntityType, cursor time.Time, limit int64) (LogEntries, error) {
	findCtx, cancelFind := context.WithTimeout(context.Background(), operationTimeout)
	defer cancelFind()
	filter := bson.M{
		"entityId":  entityId,
		"timestamp": bson.M{"$lte": cursor},
	}
	findOpts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)
	res, err := m.Db.Collection(string(entityType)).Find(findCtx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer res.Close(findCtx)

	var entries LogEntries
	decodeCtx, cancelDecode := context.WithTimeout(context.Background(), operationTimeout)
	defer cancelDecode()
	if err := res.All(decodeCtx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
