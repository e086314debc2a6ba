package response

import "github.com/go-webauthn/webauthn/protocol"

// RegisterBeginResponse embeds the library's creation options, which
// marshal under a "publicKey" key, next to the opaque ceremony state id.
type RegisterBeginResponse struct {
	*protocol.CredentialCreation
	StateID string `json:"state_id"`
}

type LoginBeginResponse struct {
	*protocol.CredentialAssertion
	StateID string `json:"state_id"`
}

type RecoverResponse struct {
	Message string `json:"message"`
}
