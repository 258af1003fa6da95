package validators

import "go.mongodb.org/mongo-driver/bson"

// calendarDate matches the YYYY-MM-DD strings the API stores for stay and
// payment dates.
const calendarDate = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`

var (
	sequenceID = bson.M{"bsonType": "long", "minimum": 1}
	reference  = bson.M{"bsonType": "long", "minimum": 1}
	timestamp  = bson.M{"bsonType": "date"}
)
