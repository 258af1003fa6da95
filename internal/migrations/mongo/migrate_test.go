package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Collections {
		assert.False(t, seen[c.Name], "duplicate collection %s", c.Name)
		seen[c.Name] = true
	}
	for _, name := range []string{"rooms", "customers", "bookings", "payments", "staff", "users", "personal_access_tokens"} {
		assert.True(t, seen[name], "missing collection %s", name)
	}
}

func TestCollections_RequiredFieldsAreDescribed(t *testing.T) {
	for _, c := range Collections {
		t.Run(c.Name, func(t *testing.T) {
			schema, ok := c.Validator["$jsonSchema"].(bson.M)
			require.True(t, ok)
			properties, ok := schema["properties"].(bson.M)
			require.True(t, ok)
			required, ok := schema["required"].([]string)
			require.True(t, ok)

			for _, field := range required {
				assert.Contains(t, properties, field)
			}
		})
	}
}

func TestCollections_UniqueIndexes(t *testing.T) {
	want := map[string]string{
		"rooms":                  "number",
		"customers":              "email",
		"personal_access_tokens": "token",
	}

	for _, c := range Collections {
		field, ok := want[c.Name]
		if !ok {
			continue
		}
		found := false
		for _, idx := range c.Indexes {
			keys := idx.Keys.(bson.D)
			if keys[0].Key == field && idx.Options != nil && idx.Options.Unique != nil && *idx.Options.Unique {
				found = true
			}
		}
		assert.True(t, found, "%s.%s should be unique", c.Name, field)
	}
}
