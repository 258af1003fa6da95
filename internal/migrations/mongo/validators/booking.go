package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"customer_id",
			"check_in_date",
			"check_out_date",
			"total_price",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":         sequenceID,
			"room_id":     reference,
			"customer_id": reference,
			"check_in_date": bson.M{
				"bsonType": "string",
				"pattern":  calendarDate,
			},
			"check_out_date": bson.M{
				"bsonType": "string",
				"pattern":  calendarDate,
			},
			"total_price": bson.M{
				"bsonType": "double",
			},
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}
