//go:build unit || e2e

package builder

import (
	"time"

	"court-booking-engine/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID       uuid.UUID
	Name     string
	Type     resource.Type
	Capacity int
	Active   bool
	Now      time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:       uuid.New(),
		Name:     "Court A",
		Type:     resource.TypeCompetition,
		Capacity: 4,
		Active:   true,
		Now:      time.Now(),
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) WithType(t resource.Type) *ResourceBuilder {
	b.Type = t
	return b
}

func (b *ResourceBuilder) Inactive() *ResourceBuilder {
	b.Active = false
	return b
}

func (b *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	r, err := resource.NewResource(b.ID, b.Name, b.Type, b.Capacity, b.Now)
	if err != nil {
		return nil, err
	}
	r.SetActive(b.Active, b.Now)
	return r, nil
}

func (b *ResourceBuilder) MustBuild() *resource.Resource {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}
