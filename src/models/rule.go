package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flow rule actions
const (
	ActionEndSurvey     = "endSurvey"
	ActionToSection     = "toSection"
	ActionSelectEndPage = "selectEndPage"
)

// Conditions. Text: equal, notEqual, contains, beginsWith, endsWith, matchRegExp.
// Choice: selected, notSelected, empty, notEmpty. Scalar: greater, less, equal, notEqual, range.
const (
	CondEqual       = "equal"
	CondNotEqual    = "notEqual"
	CondContains    = "contains"
	CondBeginsWith  = "beginsWith"
	CondEndsWith    = "endsWith"
	CondMatchRegExp = "matchRegExp"
	CondSelected    = "selected"
	CondNotSelected = "notSelected"
	CondEmpty       = "empty"
	CondNotEmpty    = "notEmpty"
	CondGreater     = "greater"
	CondLess        = "less"
	CondRange       = "range"
)

// FlowRule branches traversal after its item is answered.
// All conditions must hold (one per referenced item).
type FlowRule struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Conditions []Predicate         `bson:"conditions" json:"conditions"`
	Action     string              `bson:"action" json:"action"`
	Target     *primitive.ObjectID `bson:"target,omitempty" json:"target,omitempty"`
}

// DisplayRule shows or hides its owner depending on an earlier item's stored answer.
type DisplayRule struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ConditionItemID primitive.ObjectID `bson:"conditionSurveyItem" json:"conditionSurveyItem"`
	Display         bool               `bson:"display" json:"display"`
	Predicate       Predicate          `bson:"predicate" json:"predicate"`
}

// Predicate is a single condition against one item's answer.
// ItemID may be zero, meaning the item owning the rule.
type Predicate struct {
	ItemID    primitive.ObjectID `bson:"surveyItem,omitempty" json:"surveyItem,omitempty"`
	Condition string             `bson:"condition" json:"condition"`
	Value     string             `bson:"value,omitempty" json:"value,omitempty"`
	Number    *float64           `bson:"number,omitempty" json:"number,omitempty"`
	Range     *NumRange          `bson:"range,omitempty" json:"range,omitempty"`
	Options   []string           `bson:"options,omitempty" json:"options,omitempty"`
	Cells     []GridCell         `bson:"cells,omitempty" json:"cells,omitempty"`
}
