package models

// MessageType discriminates the payload of a ChannelMessage
type MessageType string

const (
	// MessageTypeJoin announces this client to the session (outbound)
	MessageTypeJoin MessageType = "join"

	// MessageTypeLeave announces an intentional departure (outbound)
	MessageTypeLeave MessageType = "leave"

	// MessageTypeFocusUpdate relays a focus score upstream (outbound)
	MessageTypeFocusUpdate MessageType = "focus_update"

	// MessageTypeFocusUpdateAck acknowledges a relayed focus score (inbound)
	MessageTypeFocusUpdateAck MessageType = "focus_update_ack"

	// MessageTypeParticipantsUpdate carries a full roster replacement (inbound)
	MessageTypeParticipantsUpdate MessageType = "participants_update"

	// MessageTypeFocusData carries focus scores back down: a single score
	// for students, a per-participant list for instructors (inbound)
	MessageTypeFocusData MessageType = "focus_data"

	// MessageTypeSessionStatus carries an authoritative lifecycle change (inbound)
	MessageTypeSessionStatus MessageType = "session_status"

	// MessageTypeSessionControl carries an instructor lifecycle command (outbound)
	MessageTypeSessionControl MessageType = "session_control"

	// MessageTypeConnectionEstablished confirms a successful connect (inbound)
	MessageTypeConnectionEstablished MessageType = "connection_established"

	// MessageTypeUserJoined announces another participant connecting (inbound)
	MessageTypeUserJoined MessageType = "user_joined"

	// MessageTypeUserLeft announces another participant disconnecting (inbound)
	MessageTypeUserLeft MessageType = "user_left"

	// MessageTypeChat carries a chat line (both directions)
	MessageTypeChat MessageType = "chat_message"

	// MessageTypeError carries a server-reported error (inbound)
	MessageTypeError MessageType = "error"
)

// ControlAction is the action field of a session_control message
type ControlAction string

const (
	// ControlActionLive resumes a paused session
	ControlActionLive ControlAction = "live"

	// ControlActionPaused pauses a live session
	ControlActionPaused ControlAction = "paused"

	// ControlActionEnd ends the session
	ControlActionEnd ControlAction = "end"
)

// ChannelMessage is the wire format for every message on the session
// channel. Messages are flat JSON objects; Type determines which of the
// remaining fields are meaningful.
type ChannelMessage struct {
	Type MessageType `json:"type"`

	// Identity fields (join, leave, focus_update, user_joined, user_left, chat)
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Role     Role   `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`

	// Score is set on focus_update and on student-facing focus_data.
	// A pointer keeps a legitimate score of zero on the wire.
	Score *int `json:"score,omitempty"`

	// Participants is set on participants_update
	Participants []Participant `json:"participants,omitempty"`

	// Data is set on instructor-facing focus_data
	Data []FocusEntry `json:"data,omitempty"`

	// Status is set on session_status
	Status SessionStatus `json:"status,omitempty"`

	// Control fields (session_control)
	Action    ControlAction `json:"action,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Notes     string        `json:"notes,omitempty"`

	// Message is free text: the error description on error messages, the
	// chat line on chat messages, the banner on connection_established
	Message string `json:"message,omitempty"`

	// Timestamp is an ISO-8601 server timestamp on presence and chat messages
	Timestamp string `json:"timestamp,omitempty"`
}

// IntPtr is a convenience for building messages whose Score field is set
func IntPtr(v int) *int {
	return &v
}
