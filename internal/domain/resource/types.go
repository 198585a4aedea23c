package resource

import "errors"

var ErrInvalidType = errors.New("invalid resource type")

type Type string

const (
	TypeCompetition Type = "competition"
	TypeTraining    Type = "training"
	TypeSolo        Type = "solo"
	TypePractice    Type = "practice"
)

func AllTypes() []Type {
	return []Type{TypeCompetition, TypeTraining, TypeSolo, TypePractice}
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeCompetition, TypeTraining, TypeSolo, TypePractice:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
