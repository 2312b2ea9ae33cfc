package entity

import "time"

type ContentEventType string

const (
	PostCreated      ContentEventType = "post_created"
	PostUpdated      ContentEventType = "post_updated"
	PostDeleted      ContentEventType = "post_deleted"
	CommentCreated   ContentEventType = "comment_created"
	CommentApproved  ContentEventType = "comment_approved"
	CommentRejected  ContentEventType = "comment_rejected"
	CommentDeleted   ContentEventType = "comment_deleted"
	CategoryChanged  ContentEventType = "category_changed"
	PageChanged      ContentEventType = "page_changed"
	UserRegistered   ContentEventType = "user_registered"
	SettingsModified ContentEventType = "settings_modified"
)

type ContentEvent struct {
	EventID    string           `json:"event_id" msgpack:"event_id"`
	Type       ContentEventType `json:"type" msgpack:"type"`
	EntityID   int              `json:"entity_id" msgpack:"entity_id"`
	OccurredAt time.Time        `json:"occurred_at" msgpack:"occurred_at"`
}
