package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_id",
			"amount",
			"payment_date",
			"status",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        sequenceID,
			"booking_id": reference,
			"amount": bson.M{
				"bsonType": "double",
			},
			"payment_date": bson.M{
				"bsonType": "string",
				"pattern":  calendarDate,
			},
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"completed",
					"pending",
					"failed",
				},
			},
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}
