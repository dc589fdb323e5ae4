package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types
const (
	QuestionTypeText                 = "text"
	QuestionTypeMultipleChoice       = "multipleChoice"
	QuestionTypeCheckboxes           = "checkboxes"
	QuestionTypeDropdown             = "dropdown"
	QuestionTypeLinearScale          = "linearScale"
	QuestionTypeNetPromoterScore     = "netPromoterScore"
	QuestionTypeSlider               = "slider"
	QuestionTypeThumbs               = "thumbs"
	QuestionTypeMultipleChoiceMatrix = "multipleChoiceMatrix"
	QuestionTypeCheckboxMatrix       = "checkboxMatrix"
	QuestionTypeCountryList          = "countryList"
)

// Text input kinds
const (
	InputNumber = "number"
	InputPhone  = "phone"
	InputEmail  = "email"
)

// --- Question ---
type Question struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
	Type string             `bson:"type" json:"type"`

	// text
	Input string   `bson:"input,omitempty" json:"input,omitempty"`
	From  *float64 `bson:"from,omitempty" json:"from,omitempty"`
	To    *float64 `bson:"to,omitempty" json:"to,omitempty"`

	// quiz
	Quiz             bool       `bson:"quiz" json:"quiz"`
	QuizCorrectValue *float64   `bson:"quizCorrectValue,omitempty" json:"-"`
	QuizCorrectRange *NumRange  `bson:"quizCorrectRange,omitempty" json:"-"`
	QuizCondition    string     `bson:"quizCondition,omitempty" json:"-"`
	QuizCorrectCells []GridCell `bson:"quizCorrectCells,omitempty" json:"-"`

	Options     []QuestionOption `bson:"options,omitempty" json:"options,omitempty"`
	GridRows    []GridRow        `bson:"gridRows,omitempty" json:"gridRows,omitempty"`
	GridColumns []GridColumn     `bson:"gridColumns,omitempty" json:"gridColumns,omitempty"`
}

// Option looks up an option by its hex id.
func (q *Question) Option(id string) *QuestionOption {
	for i := range q.Options {
		if q.Options[i].ID.Hex() == id {
			return &q.Options[i]
		}
	}
	return nil
}

// HasRow reports whether the question owns the given grid row id.
func (q *Question) HasRow(id string) bool {
	for _, r := range q.GridRows {
		if r.ID.Hex() == id {
			return true
		}
	}
	return false
}

// HasColumn reports whether the question owns the given grid column id.
func (q *Question) HasColumn(id string) bool {
	for _, c := range q.GridColumns {
		if c.ID.Hex() == id {
			return true
		}
	}
	return false
}

// --- QuestionOption ---
type QuestionOption struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	SortableID     int                `bson:"sortableId" json:"sortableId"`
	QuizCorrect    bool               `bson:"quizCorrect" json:"-"`
	QuizResultText string             `bson:"quizResultText,omitempty" json:"-"`
}

// --- Grid ---
type GridRow struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	SortableID int                `bson:"sortableId" json:"sortableId"`
}

type GridColumn struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	SortableID int                `bson:"sortableId" json:"sortableId"`
}

// GridCell is one {row, column} selection of a matrix question.
type GridCell struct {
	Row    string `bson:"row" json:"row"`
	Column string `bson:"column" json:"column"`
}

// NumRange is an inclusive numeric range.
type NumRange struct {
	From float64 `bson:"from" json:"from"`
	To   float64 `bson:"to" json:"to"`
}

// Contains reports whether v lies within the range, bounds included.
func (r NumRange) Contains(v float64) bool {
	return v >= r.From && v <= r.To
}
