package validators

import "go.mongodb.org/mongo-driver/bson"

var integer = []string{"int", "long"}

var AppointmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"doctor_id",
			"date",
			"time",
			"patient_name",
			"patient_phone",
			"token_number",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"doctor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"doctor_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},

			"patient_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"patient_age": bson.M{
				"bsonType":  "string",
				"maxLength": 3,
			},

			"patient_phone": bson.M{
				"bsonType":  "string",
				"minLength": 5,
				"maxLength": 20,
			},

			"symptoms": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"token_number": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"confirmed"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
