package models

import "go.mongodb.org/mongo-driver/v2/bson"

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string        `bson:"firstName"     json:"firstName"`
	LastName     string        `bson:"lastName"      json:"lastName"`
	Email        string        `bson:"email"         json:"email"`
	MobileNo     string        `bson:"mobileNo"      json:"mobileNo"`
	PasswordHash string        `bson:"password"      json:"-"`
	IsAdmin      bool          `bson:"isAdmin"       json:"isAdmin"`
}
