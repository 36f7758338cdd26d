package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/hr-console/internal/domain/model"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

const attendancePath = "attendance"

// AttendanceServiceOptions groups dependencies for AttendanceService.
type AttendanceServiceOptions struct {
	Gateway ports.Gateway // Required
	Logger  *slog.Logger  // Optional
}

// AttendanceService logs daily attendance through the HR service.
type AttendanceService struct {
	gw     ports.Gateway
	logger *slog.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(opts AttendanceServiceOptions) *AttendanceService {
	if opts.Gateway == nil {
		panic("service: Gateway is required")
	}
	return &AttendanceService{gw: opts.Gateway, logger: componentLogger(opts.Logger, "attendance_service")}
}

// List returns every attendance record.
func (s *AttendanceService) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	if err := s.gw.Get(ctx, attendancePath, nil, &out); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return out, nil
}

// Get returns one attendance record.
func (s *AttendanceService) Get(ctx context.Context, id model.ID) (model.AttendanceRecord, error) {
	if id.IsZero() {
		return model.AttendanceRecord{}, apperrors.Validation("Attendance id is required.")
	}
	var out model.AttendanceRecord
	if err := s.gw.Get(ctx, itemPath(attendancePath, id), nil, &out); err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("get attendance: %w", err)
	}
	return out, nil
}

// Create validates req and records attendance.
func (s *AttendanceService) Create(ctx context.Context, req model.AttendanceRequest) (model.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return model.AttendanceRecord{}, err
	}
	var out model.AttendanceRecord
	if err := s.gw.Post(ctx, attendancePath, req, &out); err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("create attendance: %w", err)
	}
	s.logger.InfoContext(ctx, "attendance recorded", "id", out.ID, "status", req.Status)
	return out, nil
}

// Update validates req and replaces the record with id.
func (s *AttendanceService) Update(ctx context.Context, id model.ID, req model.AttendanceRequest) (model.AttendanceRecord, error) {
	if id.IsZero() {
		return model.AttendanceRecord{}, apperrors.Validation("Attendance id is required.")
	}
	if err := req.Validate(); err != nil {
		return model.AttendanceRecord{}, err
	}
	var out model.AttendanceRecord
	if err := s.gw.Put(ctx, itemPath(attendancePath, id), req, &out); err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("update attendance: %w", err)
	}
	if out.ID.IsZero() {
		out = model.AttendanceRecord{
			ID:           id,
			EmployeeID:   req.EmployeeID,
			EmployeeName: req.EmployeeName,
			Date:         req.Date,
			Status:       req.Status,
			Remarks:      req.Remarks,
		}
	}
	return out, nil
}

// Delete removes the record with id.
func (s *AttendanceService) Delete(ctx context.Context, id model.ID) error {
	if id.IsZero() {
		return apperrors.Validation("Attendance id is required.")
	}
	if err := s.gw.Delete(ctx, itemPath(attendancePath, id)); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	s.logger.InfoContext(ctx, "attendance deleted", "id", id)
	return nil
}
