package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// CuratorID значение issuedBy для куратора
const CuratorID = "curator"

// ActorKind вид исполнителя
type ActorKind int

const (
	ActorCurator ActorKind = iota
	ActorIntern
)

// Actor кто выдал заказ: куратор или стажёр по id.
// В JSON хранится строкой "curator" или id стажёра.
type Actor struct {
	Kind     ActorKind
	InternID string
}

var ErrEmptyActor = errors.New("empty actor")

// Curator исполнитель-куратор
func Curator() Actor { return Actor{Kind: ActorCurator} }

// InternActor исполнитель-стажёр
func InternActor(id string) Actor { return Actor{Kind: ActorIntern, InternID: id} }

// ParseActor разбирает строковое представление
func ParseActor(s string) (Actor, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return Actor{}, ErrEmptyActor
	case CuratorID:
		return Curator(), nil
	default:
		return InternActor(s), nil
	}
}

func (a Actor) IsCurator() bool { return a.Kind == ActorCurator }

func (a Actor) String() string {
	if a.IsCurator() {
		return CuratorID
	}
	return a.InternID
}

func (a Actor) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Actor) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseActor(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
