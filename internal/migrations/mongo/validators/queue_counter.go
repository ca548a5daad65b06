package validators

import "go.mongodb.org/mongo-driver/bson"

var QueueCounterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"doctor_id", "date", "issued"},
		"additionalProperties": true,

		"properties": bson.M{
			"doctor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"issued": bson.M{
				"bsonType": integer,
				"minimum":  0,
			},

			"now_serving": bson.M{
				"bsonType": integer,
				"minimum":  0,
			},
		},
	},
}
