package model

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/adk-labs/platform/internal/errs"
)

var (
	ErrInvalidTenantStatus     = errors.New("tenant status is not valid")
	ErrInvalidStatusTransition = errors.New("tenant status transition is not allowed")
	ErrEmptyTenantSlug         = errors.New("tenant slug must not be empty")
)

// TenantStatus represents the lifecycle status of a tenant.
type TenantStatus string

const (
	TenantStatusProvisioning TenantStatus = "provisioning"
	TenantStatusActive       TenantStatus = "active"
	TenantStatusSuspended    TenantStatus = "suspended"
	TenantStatusDeleted      TenantStatus = "deleted"
)

var validTenantStatuses = map[TenantStatus]struct{}{
	TenantStatusProvisioning: {},
	TenantStatusActive:       {},
	TenantStatusSuspended:    {},
	TenantStatusDeleted:      {},
}

func (s TenantStatus) String() string { return string(s) }

// Validate returns an error if the status is not one of the known
// lifecycle states.
func (s TenantStatus) Validate() error {
	if _, ok := validTenantStatuses[s]; !ok {
		return ErrInvalidTenantStatus
	}

	return nil
}

// statusLifecycle builds the state machine that guards administrative
// status changes. Deleted is terminal; physical deprovisioning is a
// separate explicit operation.
func statusLifecycle(current TenantStatus) *fsm.FSM {
	return fsm.NewFSM(
		current.String(),
		fsm.Events{
			{Name: "activate", Src: []string{TenantStatusProvisioning.String()}, Dst: TenantStatusActive.String()},
			{Name: "suspend", Src: []string{TenantStatusActive.String()}, Dst: TenantStatusSuspended.String()},
			{Name: "resume", Src: []string{TenantStatusSuspended.String()}, Dst: TenantStatusActive.String()},
			{
				Name: "delete",
				Src:  []string{TenantStatusActive.String(), TenantStatusSuspended.String()},
				Dst:  TenantStatusDeleted.String(),
			},
		},
		fsm.Callbacks{},
	)
}

var statusEvents = map[TenantStatus]string{
	TenantStatusActive:    "activate",
	TenantStatusSuspended: "suspend",
	TenantStatusDeleted:   "delete",
}

// TransitionStatus checks that moving from the tenant's current status
// to target is a legal lifecycle step and applies it.
func (t *Tenant) TransitionStatus(target TenantStatus) error {
	err := target.Validate()
	if err != nil {
		return err
	}

	if t.Status == target {
		return nil
	}

	event, ok := statusEvents[target]
	if !ok {
		return ErrInvalidStatusTransition
	}

	machine := statusLifecycle(t.Status)
	if t.Status == TenantStatusSuspended && target == TenantStatusActive {
		event = "resume"
	}

	err = machine.Event(context.Background(), event)
	if err != nil {
		return errs.Wrap(ErrInvalidStatusTransition, err)
	}

	t.Status = TenantStatus(machine.Current())

	return nil
}
