// Package response defines the wire bodies of the admin API. The shapes
// are fixed by the existing frontend: errors and plain acks are {"msg"},
// adjudications carry the mutated team, login returns {"success","token"}.
package response

import "igcadmin/entity"

type Message struct {
	Msg string `json:"msg"`
}

func Error(msg string) Message {
	return Message{Msg: msg}
}

func Ok(msg string) Message {
	return Message{Msg: msg}
}

// TeamResult is the 201 body of accept-team, reject-team and register.
type TeamResult struct {
	Msg  string                   `json:"msg"`
	Team *entity.TeamRegistration `json:"team"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
