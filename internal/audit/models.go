package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"veriadmin/pkg/requestcontext"
)

// Action names what happened.
type Action string

const (
	ActionSelectionOpened     Action = "selection_opened"
	ActionSelectionDiscarded  Action = "selection_discarded"
	ActionLocationSubmitted   Action = "location_submitted"
	ActionCityRegionSubmitted Action = "city_region_submitted"
	ActionPricingSubmitted    Action = "pricing_submitted"
	ActionSubmissionRejected  Action = "submission_rejected"
	ActionAddressResolved     Action = "address_resolved"
	ActionOrganizationChecked Action = "organization_checked"
)

// Event is one entry in the admin activity trail.
type Event struct {
	ID             string    `json:"id"`
	Action         Action    `json:"action"`
	Timestamp      time.Time `json:"timestamp"`
	ActorID        string    `json:"actorId,omitempty"`
	Role           string    `json:"role,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty"`
	SelectionID    string    `json:"selectionId,omitempty"`
	Profile        string    `json:"profile,omitempty"`
	ResourceID     string    `json:"resourceId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	RequestID      string    `json:"requestId,omitempty"`
	ClientIP       string    `json:"clientIp,omitempty"`
	Device         string    `json:"device,omitempty"`
}

// NewEvent fills the actor and request fields from ctx.
func NewEvent(ctx context.Context, action Action) Event {
	e := Event{
		ID:             uuid.NewString(),
		Action:         action,
		Timestamp:      requestcontext.Now(ctx),
		Role:           requestcontext.Role(ctx).String(),
		OrganizationID: requestcontext.OrganizationID(ctx).String(),
		RequestID:      requestcontext.RequestID(ctx),
		ClientIP:       requestcontext.ClientIP(ctx),
		Device:         DeviceLabel(requestcontext.UserAgent(ctx)),
	}
	if actor := requestcontext.UserID(ctx); !actor.IsNil() {
		e.ActorID = actor.String()
	}
	return e
}

// Publisher records audit events.
type Publisher interface {
	Emit(ctx context.Context, e Event) error
}
