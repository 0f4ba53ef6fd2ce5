package dto

import (
	"github.com/google/uuid"

	notificationModel "sciedu_backend/internals/features/notifications/model"
)

type CreateNotificationRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Type    string    `json:"type" validate:"omitempty,oneof=INFO SUCCESS WARNING ERROR ASSIGNMENT GRADE"`
	Title   string    `json:"title" validate:"required,max=255"`
	Message string    `json:"message" validate:"required"`
	Link    *string   `json:"link" validate:"omitempty,max=255"`
}

func (r CreateNotificationRequest) ToModel() notificationModel.NotificationModel {
	t := r.Type
	if t == "" {
		t = "INFO"
	}
	return notificationModel.NotificationModel{
		UserID:  r.UserID,
		Type:    t,
		Title:   r.Title,
		Message: r.Message,
		Link:    r.Link,
	}
}
