package dependency

import (
	"context"
	"time"
)

type ChangeAction string

const (
	ActionInsert ChangeAction = "insert"
	ActionUpdate ChangeAction = "update"
	ActionDelete ChangeAction = "delete"
	ActionReload ChangeAction = "reload"
)

// ReportChanged 每次成功变更后发布的事件
type ReportChanged struct {
	Action     ChangeAction `json:"action"`
	ReportID   int64        `json:"report_id"`
	Vessel     string       `json:"vessel,omitempty"`
	Generation uint64       `json:"generation"`
	Time       time.Time    `json:"time"`
}

// EventPublisher 变更事件的下游通知，发布失败不影响变更本身
type EventPublisher interface {
	PublishReportChanged(ctx context.Context, event ReportChanged) error
	Close() error
}
