package serviceImp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrilink/entities"
	contractrepo "agrilink/pkg/contract/repository"
	"agrilink/pkg/contract/service"
	farmerrepo "agrilink/pkg/farmer/repository"
)

type ContractSvc struct {
	contracts contractrepo.ContractRepository
	farmers   farmerrepo.FarmerRepository
	log       *zap.SugaredLogger
}

func New(contracts contractrepo.ContractRepository, farmers farmerrepo.FarmerRepository, log *zap.SugaredLogger) service.ContractService {
	return &ContractSvc{contracts: contracts, farmers: farmers, log: log}
}

// Confirm moves Pending -> Confirmed. Only the contract's farmer may do it.
func (s *ContractSvc) Confirm(ctx context.Context, contractID, farmerID uint) (*entities.Contract, error) {
	c, err := s.contracts.FindByID(contractID)
	if err != nil {
		return nil, err
	}
	if c.FarmerID != farmerID {
		return nil, service.ErrNotParty
	}
	if !entities.ValidContractTransition(c.Status, entities.ContractConfirmed) {
		return nil, fmt.Errorf("%w: %s -> %s", service.ErrInvalidTransition, c.Status, entities.ContractConfirmed)
	}

	c.Status = entities.ContractConfirmed
	if err := s.contracts.Save(c); err != nil {
		return nil, err
	}
	s.log.Infow("contract confirmed", "contract_id", c.ContractID, "farmer_id", farmerID)
	return c, nil
}

// Complete moves Confirmed -> Completed: records the quality check, marks the
// balance paid, and credits the farmer's wallet with the balance amount.
func (s *ContractSvc) Complete(ctx context.Context, contractID, companyID uint, qc entities.QualityCheck) (*entities.Contract, error) {
	c, err := s.contracts.FindByID(contractID)
	if err != nil {
		return nil, err
	}
	if c.CompanyID != companyID {
		return nil, service.ErrNotParty
	}
	if !entities.ValidContractTransition(c.Status, entities.ContractCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", service.ErrInvalidTransition, c.Status, entities.ContractCompleted)
	}

	c.QualityCheck = &qc
	c.Status = entities.ContractCompleted
	c.Payment.BalancePaid = true
	if err := s.contracts.Save(c); err != nil {
		return nil, err
	}

	payout := c.Payment.BalanceAmount
	ref := uuid.NewString()
	if err := s.farmers.CreditWallet(c.FarmerID, payout, ref,
		fmt.Sprintf("Payment for contract %s", c.Reference)); err != nil {
		// The contract is already Completed; surface the payout failure so
		// it can be retried rather than silently dropped.
		return nil, fmt.Errorf("credit wallet: %w", err)
	}

	s.log.Infow("contract completed and payout released",
		"contract_id", c.ContractID, "farmer_id", c.FarmerID, "amount", payout, "tx_ref", ref)
	return c, nil
}
