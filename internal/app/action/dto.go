package action

import "nationsim/internal/domain/nation"

type Request struct {
	NationID string
	Type     nation.ActionType
	Params   nation.ActionParams
}

type Response struct {
	Action nation.Action       `json:"action"`
	Events []nation.WorldEvent `json:"events,omitempty"`
}
