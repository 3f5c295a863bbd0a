package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "landregistry/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: identity
	// registration, verification, title changes and dispute outcomes.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers privilege and control changes.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine registry activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from registry logic after a successful mutation. It is
// written inside the same transaction as the mutation it describes.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	// ActorID is the caller that performed the action.
	ActorID id.AccountID
	// Subject names the affected record, e.g. "land:7" or an account id.
	Subject  string
	Action   string
	Decision string
	Reason   string
	// SubjectIDHash is a keyed hash of an identity document number, for
	// traceability without storing the raw value.
	SubjectIDHash string
	RequestID     string
}

type AuditEvent string

const (
	// Identity events
	EventUserRegistered       AuditEvent = "user_registered"
	EventUserVerified         AuditEvent = "user_verified"
	EventRoleAssigned         AuditEvent = "role_assigned"
	EventRoleRevoked          AuditEvent = "role_revoked"
	EventInspectorAdded       AuditEvent = "inspector_added"
	EventInspectorRemoved     AuditEvent = "inspector_removed"
	EventRegistryPaused       AuditEvent = "registry_paused"
	EventRegistryUnpaused     AuditEvent = "registry_unpaused"
	EventOwnershipTransferred AuditEvent = "registry_ownership_transferred"
	EventRegistryBootstrapped AuditEvent = "registry_bootstrapped"

	// Asset events
	EventLandRegistered       AuditEvent = "land_registered"
	EventLandVerified         AuditEvent = "land_verified"
	EventLandListed           AuditEvent = "land_listed"
	EventLandDelisted         AuditEvent = "land_delisted"
	EventLandUpdated          AuditEvent = "land_updated"
	EventLandDocumentAdded    AuditEvent = "land_document_added"
	EventLandTransferred      AuditEvent = "land_transferred"
	EventContractAuthorized   AuditEvent = "contract_authorized"
	EventContractDeauthorized AuditEvent = "contract_deauthorized"

	// Transfer events
	EventPurchaseRequested AuditEvent = "purchase_requested"
	EventPurchaseProcessed AuditEvent = "purchase_processed"
	EventPaymentMade       AuditEvent = "payment_made"
	EventPurchaseCompleted AuditEvent = "purchase_completed"

	// Dispute events
	EventDisputeRaised   AuditEvent = "dispute_raised"
	EventDisputeResolved AuditEvent = "dispute_resolved"

	// Funds events
	EventFundsDeposited AuditEvent = "funds_deposited"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserRegistered:    CategoryCompliance,
	EventUserVerified:      CategoryCompliance,
	EventLandRegistered:    CategoryCompliance,
	EventLandVerified:      CategoryCompliance,
	EventLandTransferred:   CategoryCompliance,
	EventPaymentMade:       CategoryCompliance,
	EventPurchaseCompleted: CategoryCompliance,
	EventDisputeRaised:     CategoryCompliance,
	EventDisputeResolved:   CategoryCompliance,

	EventRoleAssigned:         CategorySecurity,
	EventRoleRevoked:          CategorySecurity,
	EventInspectorAdded:       CategorySecurity,
	EventInspectorRemoved:     CategorySecurity,
	EventRegistryPaused:       CategorySecurity,
	EventRegistryUnpaused:     CategorySecurity,
	EventOwnershipTransferred: CategorySecurity,
	EventRegistryBootstrapped: CategorySecurity,
	EventContractAuthorized:   CategorySecurity,
	EventContractDeauthorized: CategorySecurity,
	EventFundsDeposited:       CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Append must join the caller's transaction.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actor id.AccountID) ([]Event, error)
}
