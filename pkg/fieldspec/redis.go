package fieldspec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces schema keys: "<prefix>:<entityType>:<variant>".
const DefaultRedisPrefix = "fieldspec"

// RedisClient is the subset of redis.UniversalClient used by RedisSource.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads one JSON schema document per entity type and variant:
//
//	{"label": "title", "fields": [{"name": "field_tags", "required": true, "cardinality": "unlimited"}]}
//
// A missing key is an unknown type or variant, not an error.
type RedisSource struct {
	client RedisClient
	prefix string
}

// RedisOption configures RedisSource.
type RedisOption func(*RedisSource)

// WithRedisPrefix overrides DefaultRedisPrefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisSource) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisSource creates a source backed by client.
func NewRedisSource(client RedisClient, opts ...RedisOption) *RedisSource {
	s := &RedisSource{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the key holding the schema of entityType and variant.
func (s *RedisSource) Key(entityType, variant string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, entityType, variant)
}

// Schema implements Source.
func (s *RedisSource) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	data, err := s.client.Get(ctx, s.Key(entityType, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Schema{}, nil
	}
	if err != nil {
		return Schema{}, errors.Join(ErrFailedToQuerySchema, err)
	}

	var doc schemaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Schema{}, errors.Join(ErrFailedToParseSchema, err)
	}

	return doc.schema(doc.Label), nil
}

// EncodeRedisSchema renders schema in the JSON shape RedisSource reads, for
// seeding keys with SET.
func EncodeRedisSchema(schema Schema) ([]byte, error) {
	doc := schemaDocument{Label: schema.LabelKey}
	for _, def := range schema.Fields {
		cardinality := def.Cardinality
		if cardinality == 0 {
			cardinality = Single
		}
		f := fieldDocument{
			Name:        def.Name,
			Property:    def.Property,
			SubProperty: def.SubProperty,
			Required:    def.Required,
			Cardinality: cardinalityValue(cardinality),
			Type:        string(def.Kind),
			Settings: settingsDocument{
				MaxResolution:  def.Settings.MaxResolution,
				MinResolution:  def.Settings.MinResolution,
				FileExtensions: def.Settings.FileExtensions,
				AllowedValues:  def.Settings.AllowedValues,
				Min:            def.Settings.Min,
				Max:            def.Settings.Max,
				MaxLength:      def.Settings.MaxLength,
			},
		}
		for _, name := range def.Validators {
			f.Validators = append(f.Validators, string(name))
		}
		doc.Fields = append(doc.Fields, f)
	}
	return json.Marshal(doc)
}
