package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/repository"
	"github.com/satsinush/homelab-sub002/internal/wol"
)

// DeviceService manages the device inventory and dispatches wake
// packets. There is no discovery: devices are registered by hand.
type DeviceService struct {
	deviceRepo repository.DeviceRepository
	dispatcher *wol.Dispatcher
}

func NewDeviceService(deviceRepo repository.DeviceRepository, dispatcher *wol.Dispatcher) *DeviceService {
	return &DeviceService{
		deviceRepo: deviceRepo,
		dispatcher: dispatcher,
	}
}

type DeviceRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	MAC  string `json:"mac" validate:"required"`
}

type WakeRequest struct {
	MAC string `json:"mac" validate:"required"`
}

func (s *DeviceService) List(ctx context.Context) ([]*domain.Device, error) {
	return s.deviceRepo.List(ctx)
}

func (s *DeviceService) Create(ctx context.Context, req DeviceRequest) (*domain.Device, error) {
	mac, err := wol.NormalizeMAC(req.MAC)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	device := &domain.Device{
		ID:        uuid.New(),
		Name:      req.Name,
		MAC:       mac,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DeviceService) Update(ctx context.Context, id uuid.UUID, req DeviceRequest) (*domain.Device, error) {
	mac, err := wol.NormalizeMAC(req.MAC)
	if err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	device.Name = req.Name
	device.MAC = mac

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DeviceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deviceRepo.Delete(ctx, id)
}

// Wake sends a magic packet to an arbitrary MAC. The target does not
// have to be in the inventory.
func (s *DeviceService) Wake(mac string) error {
	return s.dispatcher.Wake(mac)
}

// WakeByID sends a magic packet to a registered device.
func (s *DeviceService) WakeByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.Wake(device.MAC); err != nil {
		return nil, err
	}

	return device, nil
}
