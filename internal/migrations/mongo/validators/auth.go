package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        sequenceID,
			"name":       bson.M{"bsonType": "string"},
			"email":      bson.M{"bsonType": "string", "minLength": 3},
			"created_at": timestamp,
		},
	},
}

var APITokenValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"name",
			"token",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":     sequenceID,
			"user_id": reference,
			"name":    bson.M{"bsonType": "string"},
			"token": bson.M{
				"bsonType":  "string",
				"minLength": 64,
				"maxLength": 64,
			},
			"last_used_at": timestamp,
			"created_at":   timestamp,
		},
	},
}
