package model

// TagCategory groups tags for faceting
type TagCategory string

const (
	TagCategoryTechnical      TagCategory = "technical"
	TagCategoryBehavioral     TagCategory = "behavioral"
	TagCategoryCompanyCulture TagCategory = "company-culture"
	TagCategoryRoleSpecific   TagCategory = "role-specific"
	TagCategoryIndustry       TagCategory = "industry"
)

func (c TagCategory) Valid() bool {
	switch c {
	case TagCategoryTechnical, TagCategoryBehavioral, TagCategoryCompanyCulture, TagCategoryRoleSpecific, TagCategoryIndustry:
		return true
	}
	return false
}

// DefaultTagID is assigned when nothing else classifies a question
const DefaultTagID = "problem-solving"

// Tag is a reusable classification label
type Tag struct {
	ID          string      `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Category    TagCategory `json:"category" bson:"category"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
}
