package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
