package validators

import "go.mongodb.org/mongo-driver/bson"

var StaffValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": sequenceID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
			},
			"role": bson.M{
				"bsonType": "string",
			},
			"created_at": timestamp,
		},
	},
}
