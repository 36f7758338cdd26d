package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/hr-console/internal/domain/model"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

const contractsPath = "contracts"

// ContractServiceOptions groups dependencies for ContractService.
type ContractServiceOptions struct {
	Gateway ports.Gateway // Required
	Logger  *slog.Logger  // Optional
}

// ContractService tracks employment contracts through the HR service.
type ContractService struct {
	gw     ports.Gateway
	logger *slog.Logger
}

// NewContractService constructs a ContractService.
func NewContractService(opts ContractServiceOptions) *ContractService {
	if opts.Gateway == nil {
		panic("service: Gateway is required")
	}
	return &ContractService{gw: opts.Gateway, logger: componentLogger(opts.Logger, "contract_service")}
}

// List returns every contract.
func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	var out []model.Contract
	if err := s.gw.Get(ctx, contractsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return out, nil
}

// ListActive returns contracts whose status is Active.
func (s *ContractService) ListActive(ctx context.Context) ([]model.Contract, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ActiveContracts(all), nil
}

// Get returns one contract.
func (s *ContractService) Get(ctx context.Context, id model.ID) (model.Contract, error) {
	if id.IsZero() {
		return model.Contract{}, apperrors.Validation("Contract id is required.")
	}
	var out model.Contract
	if err := s.gw.Get(ctx, itemPath(contractsPath, id), nil, &out); err != nil {
		return model.Contract{}, fmt.Errorf("get contract: %w", err)
	}
	return out, nil
}

// Create validates req and stores a new contract.
func (s *ContractService) Create(ctx context.Context, req model.ContractRequest) (model.Contract, error) {
	if err := req.Validate(); err != nil {
		return model.Contract{}, err
	}
	var out model.Contract
	if err := s.gw.Post(ctx, contractsPath, req, &out); err != nil {
		return model.Contract{}, fmt.Errorf("create contract: %w", err)
	}
	s.logger.InfoContext(ctx, "contract created", "id", out.ID, "type", req.ContractType)
	return out, nil
}

// Update validates req and replaces the contract with id.
func (s *ContractService) Update(ctx context.Context, id model.ID, req model.ContractRequest) (model.Contract, error) {
	if id.IsZero() {
		return model.Contract{}, apperrors.Validation("Contract id is required.")
	}
	if err := req.Validate(); err != nil {
		return model.Contract{}, err
	}
	var out model.Contract
	if err := s.gw.Put(ctx, itemPath(contractsPath, id), req, &out); err != nil {
		return model.Contract{}, fmt.Errorf("update contract: %w", err)
	}
	if out.ID.IsZero() {
		out = model.Contract{
			ID:           id,
			EmployeeID:   req.EmployeeID,
			EmployeeName: req.EmployeeName,
			ContractType: req.ContractType,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       req.Status,
		}
	}
	return out, nil
}

// Delete removes the contract with id.
func (s *ContractService) Delete(ctx context.Context, id model.ID) error {
	if id.IsZero() {
		return apperrors.Validation("Contract id is required.")
	}
	if err := s.gw.Delete(ctx, itemPath(contractsPath, id)); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	s.logger.InfoContext(ctx, "contract deleted", "id", id)
	return nil
}
