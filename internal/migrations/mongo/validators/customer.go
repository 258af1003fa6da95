package validators

import "go.mongodb.org/mongo-driver/bson"

var CustomerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"phone_number",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": sequenceID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 255,
			},
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 255,
			},
			"phone_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 16,
			},
			"hold": bson.M{
				"bsonType": "objectId",
			},
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}
