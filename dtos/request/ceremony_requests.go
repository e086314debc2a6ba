package request

import "encoding/json"

type RegisterBeginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ResetMode bool   `json:"reset_mode"`
}

type RegisterCompleteRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	ResetMode bool            `json:"reset_mode"`
	FirstName string          `json:"first_name" validate:"required,displayname"`
	LastName  string          `json:"last_name" validate:"required,displayname"`
	StateID   string          `json:"state_id" validate:"required"`
	Response  json.RawMessage `json:"response" validate:"required"`
}

type LoginBeginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginCompleteRequest struct {
	StateID  string          `json:"state_id" validate:"required"`
	Response json.RawMessage `json:"response" validate:"required"`
}

type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}
