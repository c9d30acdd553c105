package types

import "fmt"

type ActorKind string

const (
	ACTOR_GUEST   ActorKind = "guest"
	ACTOR_PARTNER ActorKind = "partner"
	ACTOR_ADMIN   ActorKind = "admin"
)

// ActorRef identifies the owner of a wallet or a notification target.
// Kind is a closed set; code switching on it must handle every case.
type ActorRef struct {
	Kind ActorKind `json:"kind"`
	ID   uint      `json:"id"`
}

func Guest(id uint) ActorRef   { return ActorRef{Kind: ACTOR_GUEST, ID: id} }
func Partner(id uint) ActorRef { return ActorRef{Kind: ACTOR_PARTNER, ID: id} }
func Admin(id uint) ActorRef   { return ActorRef{Kind: ACTOR_ADMIN, ID: id} }

func ParseActorKind(s string) (ActorKind, error) {
	switch ActorKind(s) {
	case ACTOR_GUEST, ACTOR_PARTNER, ACTOR_ADMIN:
		return ActorKind(s), nil
	}
	return "", fmt.Errorf("unknown actor kind %q", s)
}

func (a ActorRef) String() string {
	return fmt.Sprintf("%s:%d", a.Kind, a.ID)
}
