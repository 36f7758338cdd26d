package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/hr-console/internal/domain/model"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/ports"
)

const summaryPath = "dashboard/summary"

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Gateway ports.Gateway // Required
	Logger  *slog.Logger  // Optional
}

// DashboardService builds the dashboard counters and the HR report data.
type DashboardService struct {
	gw         ports.Gateway
	employees  *EmployeeService
	contracts  *ContractService
	attendance *AttendanceService
	logger     *slog.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Gateway == nil {
		panic("service: Gateway is required")
	}
	return &DashboardService{
		gw:         opts.Gateway,
		employees:  NewEmployeeService(EmployeeServiceOptions(opts)),
		contracts:  NewContractService(ContractServiceOptions(opts)),
		attendance: NewAttendanceService(AttendanceServiceOptions(opts)),
		logger:     componentLogger(opts.Logger, "dashboard_service"),
	}
}

// Snapshot is every list the dashboard and the HR report draw from.
type Snapshot struct {
	Employees  []model.Employee
	Contracts  []model.Contract
	Attendance []model.AttendanceRecord
}

// Summary returns the dashboard counters. When the HR service has no summary
// endpoint (404) the counters are computed from the full lists.
func (s *DashboardService) Summary(ctx context.Context) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	err := s.gw.Get(ctx, summaryPath, nil, &out)
	if err == nil {
		return out, nil
	}
	if !gateway.IsNotFound(err) {
		return model.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}

	s.logger.DebugContext(ctx, "summary endpoint missing, computing locally")
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	return model.SummarizeRecords(snap.Employees, snap.Contracts, snap.Attendance), nil
}

// Snapshot fetches employees, contracts and attendance concurrently.
// The first failure cancels the remaining calls.
func (s *DashboardService) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Employees, err = s.employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Contracts, err = s.contracts.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Attendance, err = s.attendance.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
