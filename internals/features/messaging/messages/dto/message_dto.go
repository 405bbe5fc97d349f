// internals/features/messaging/messages/dto/message_dto.go
package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	// Either an existing thread or a counterpart to open one with.
	ThreadID  *uuid.UUID `json:"thread_id"`
	Recipient *uuid.UUID `json:"recipient_id"`
	Body      string     `json:"body" validate:"required,min=1,max=4000"`
}

type PinMessageRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}
