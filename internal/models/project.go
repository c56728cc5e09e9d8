package models

type Project struct {
	Base `bson:",inline"`

	Title        string   `bson:"title" json:"title" validate:"required" label:"Title"`
	Description  string   `bson:"description" json:"description" validate:"required" label:"Description"`
	GitRepoURL   string   `bson:"gitRepoURL" json:"gitRepoURL" validate:"required,url" label:"Repository URL"`
	ProjectLink  string   `bson:"projectLink" json:"projectLink" validate:"required,url" label:"Project link"`
	Technologies []string `bson:"technologies" json:"technologies" validate:"required,min=1,dive,required" label:"Technologies"`
	Stack        string   `bson:"stack" json:"stack" validate:"required" label:"Stack"`
	Deployed     bool     `bson:"deployed" json:"deployed"`
	Banner       Asset    `bson:"projectBanner" json:"projectBanner"`
}
