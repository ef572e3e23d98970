package notification

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ResponseWindow is how long a customer has to answer a ping.
const ResponseWindow = 15 * time.Minute

var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a ledger entry for one delivery-confirmation ping.
//
// It leaves Pending at most once. Responded and TimedOut are terminal.
// Persistence applies the transition as a compare-and-set on the stored
// status, so the in-memory transition methods only guard the local copy.
type Notification struct {
	id        kernel.UUID
	parcelID  kernel.UUID
	messageID string
	status    Status
	createdAt time.Time
	deadline  time.Time

	guard guard.ConstructorGuard
}

// NewNotification opens a pending entry whose deadline is createdAt + ResponseWindow.
func NewNotification(id kernel.UUID, parcelID kernel.UUID, messageID string, createdAt time.Time) (*Notification, error) {
	n := &Notification{
		messageID: messageID,
		status:    Pending,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setParcelID(parcelID),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	n.deadline = n.createdAt.Add(ResponseWindow)

	return n, nil
}

// RestoreNotification rebuilds an entry read from storage.
func RestoreNotification(
	id kernel.UUID,
	parcelID kernel.UUID,
	messageID string,
	status Status,
	createdAt time.Time,
	deadline time.Time,
) (*Notification, error) {
	n := &Notification{
		messageID: messageID,
		deadline:  deadline,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setParcelID(parcelID),
		n.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	n.status = status

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) ParcelID() kernel.UUID {
	return n.parcelID
}

func (n *Notification) MessageID() string {
	return n.messageID
}

func (n *Notification) Status() Status {
	return n.status
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) Deadline() time.Time {
	return n.deadline
}

// IsExpired reports whether the entry is still pending and its deadline is before now.
func (n *Notification) IsExpired(now time.Time) bool {
	return n.status == Pending && n.deadline.Before(now)
}

// Respond marks the entry as answered. Late answers are accepted.
func (n *Notification) Respond() error {
	next, err := n.status.leavePending(Responded)
	if err != nil {
		return err
	}
	n.status = next
	return nil
}

// TimeOut marks the entry as expired without an answer.
func (n *Notification) TimeOut() error {
	next, err := n.status.leavePending(TimedOut)
	if err != nil {
		return err
	}
	n.status = next
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelId", err)
	}
	n.parcelID = parcelID
	return nil
}

func (n *Notification) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	n.createdAt = createdAt
	return nil
}
