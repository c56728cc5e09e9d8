package models

// Period is an open-ended date range; To is empty for ongoing entries.
type Period struct {
	From string `bson:"from" json:"from" validate:"required" label:"Start date"`
	To   string `bson:"to,omitempty" json:"to,omitempty"`
}

type Timeline struct {
	Base `bson:",inline"`

	Title       string `bson:"title" json:"title" validate:"required" label:"Title"`
	Description string `bson:"description" json:"description" validate:"required" label:"Description"`
	Timeline    Period `bson:"timeline" json:"timeline"`
}
