package models

type Skill struct {
	Base `bson:",inline"`

	Title       string `bson:"title" json:"title" validate:"required" label:"Title"`
	Proficiency int    `bson:"proficiency" json:"proficiency" validate:"min=0,max=100" label:"Proficiency"`
	Icon        Asset  `bson:"svg,omitempty" json:"svg,omitempty"`
}
