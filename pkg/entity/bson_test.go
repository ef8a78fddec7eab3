package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
)

func TestFromBSON(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := entity.FromBSON(bson.M{
		"_id":     id,
		"title":   "Broken link",
		"created": bson.NewDateTimeFromTime(created),
		"body":    bson.D{{Key: "value", Value: "Steps"}, {Key: "format", Value: "plain"}},
		"tags":    bson.A{"a", bson.M{"target_id": int32(3)}},
		"note":    bson.Null{},
	})

	assert.Equal(t, id.Hex(), doc["_id"])
	assert.Equal(t, "Broken link", doc["title"])
	assert.Equal(t, created, doc["created"])
	assert.Equal(t, map[string]any{"value": "Steps", "format": "plain"}, doc["body"])
	assert.Equal(t, []any{"a", map[string]any{"target_id": int32(3)}}, doc["tags"])
	assert.Nil(t, doc["note"])

	v, ok := doc.Property("body")
	require.True(t, ok)
	assert.Equal(t, "Steps", entity.ValueOf(v).Sub("value").Raw())
}

func TestFromRaw(t *testing.T) {
	t.Parallel()

	t.Run("decodes marshaled documents", func(t *testing.T) {
		t.Parallel()

		data, err := bson.Marshal(bson.D{
			{Key: "title", Value: "Broken link"},
			{Key: "body", Value: bson.D{{Key: "value", Value: "Steps"}}},
			{Key: "tags", Value: bson.A{"a", ""}},
		})
		require.NoError(t, err)

		doc, err := entity.FromRaw(bson.Raw(data))
		require.NoError(t, err)
		assert.Equal(t, "Broken link", doc["title"])
		assert.Equal(t, map[string]any{"value": "Steps"}, doc["body"])
		assert.Equal(t, []any{"a", ""}, doc["tags"])
	})

	t.Run("rejects malformed bytes", func(t *testing.T) {
		t.Parallel()

		_, err := entity.FromRaw(bson.Raw{0x01, 0x02})
		assert.ErrorIs(t, err, entity.ErrInvalidDocument)
	})
}
