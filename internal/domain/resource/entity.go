package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrInvalidCapacity     = errors.New("capacity must be at least 1")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const (
	MaxResourceNameLength = 255
)

type Resource struct {
	id           uuid.UUID
	name         string
	resourceType Type
	capacity     int
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewResource(id uuid.UUID, name string, resourceType Type, capacity int, now time.Time) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}
	if !resourceType.IsValid() {
		return nil, ErrInvalidType
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Resource{
		id:           id,
		name:         strings.TrimSpace(name),
		resourceType: resourceType,
		capacity:     capacity,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name string,
	resourceType Type,
	capacity int,
	active bool,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:           id,
		name:         name,
		resourceType: resourceType,
		capacity:     capacity,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Resource) Rename(name string, now time.Time) error {
	if err := validateResourceName(name); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	r.updatedAt = now
	return nil
}

func (r *Resource) SetActive(active bool, now time.Time) {
	if r.active == active {
		return
	}
	r.active = active
	r.updatedAt = now
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Type() Type           { return r.resourceType }
func (r *Resource) Capacity() int        { return r.capacity }
func (r *Resource) IsActive() bool       { return r.active }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
