package models

import "time"

// Message is a contact-form submission.
type Message struct {
	Base `bson:",inline"`

	SenderName string    `bson:"senderName" json:"senderName" validate:"required,min=3" label:"Name"`
	Subject    string    `bson:"subject" json:"subject" validate:"required,min=3" label:"Subject"`
	Message    string    `bson:"message" json:"message" validate:"required,min=3" label:"Message"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
