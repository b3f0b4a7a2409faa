package service

import (
	"context"
	"errors"

	"agrilink/entities"
)

// ErrInvalidTransition rejects any contract status change outside the allowed
// edges (Pending->Confirmed by the farmer, Confirmed->Completed by the
// company). Nothing is mutated when it is returned.
var ErrInvalidTransition = errors.New("invalid contract status transition")

// ErrNotParty rejects a transition attempted by someone who is not the
// contract's farmer or company.
var ErrNotParty = errors.New("not a party to this contract")

type ContractService interface {
	Confirm(ctx context.Context, contractID, farmerID uint) (*entities.Contract, error)
	Complete(ctx context.Context, contractID, companyID uint, qc entities.QualityCheck) (*entities.Contract, error)
}
