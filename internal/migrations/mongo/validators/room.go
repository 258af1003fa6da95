package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"number",
			"type",
			"price_per_night",
			"status",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":    sequenceID,
			"number": bson.M{"bsonType": "long"},
			"type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 255,
			},
			"price_per_night": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"booked",
					"maintenance",
				},
			},
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}
