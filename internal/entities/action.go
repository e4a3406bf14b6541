package entities

import "fmt"

// Action is the granularity at which permissions are granted.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// AllActions lists every valid action.
var AllActions = []Action{ActionView, ActionAdd, ActionEdit, ActionDelete}

// ParseAction validates an action literal received at a boundary.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionView, ActionAdd, ActionEdit, ActionDelete:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action: %q", s)
}
