package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Gateway     *gateway.Client
	Sessions    *service.SessionService
	Auth        *service.AuthService
	Employees   *service.EmployeeService
	Departments *service.DepartmentService
	Contracts   *service.ContractService
	Attendance  *service.AttendanceService
	Dashboard   *service.DashboardService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config   *config.AppConfig
	Sessions *SessionBackend
	Logger   *slog.Logger
}

// NewGateway builds the HR service client. Calls carry the token of the session in the request context.
func NewGateway(cfg config.GatewayConfig, logger *slog.Logger) (*gateway.Client, error) {
	client, err := gateway.New(gateway.Options{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		ExtraHeaders:     cfg.ExtraHeaders,
		ErrorMessagePath: cfg.ErrorMessagePath,
		DataPath:         cfg.DataPath,
		Credentials:      gateway.SessionCredentials(),
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build gateway: %w", err)
	}
	return client, nil
}

// NewServices wires the gateway, session and HR services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps config is required")
	}
	if deps.Sessions == nil || deps.Sessions.Store == nil {
		return ServiceContainer{}, errors.New("session backend is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	gw, err := NewGateway(cfg.Gateway, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Sessions: deps.Sessions.Store,
		TTL:      cfg.Session.TTL,
		Logger:   logger,
	})

	auth, err := BuildAuthService(ctx, AuthConfig{
		Auth:     cfg.Auth,
		Gateway:  gw,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Gateway:     gw,
		Sessions:    sessions,
		Auth:        auth,
		Employees:   service.NewEmployeeService(service.EmployeeServiceOptions{Gateway: gw, Logger: logger}),
		Departments: service.NewDepartmentService(gw),
		Contracts:   service.NewContractService(service.ContractServiceOptions{Gateway: gw, Logger: logger}),
		Attendance:  service.NewAttendanceService(service.AttendanceServiceOptions{Gateway: gw, Logger: logger}),
		Dashboard:   service.NewDashboardService(service.DashboardServiceOptions{Gateway: gw, Logger: logger}),
	}, nil
}
