package models

type SoftwareApp struct {
	Base `bson:",inline"`

	Name string `bson:"name" json:"name" validate:"required" label:"Name"`
	Icon Asset  `bson:"svg" json:"svg"`
}
