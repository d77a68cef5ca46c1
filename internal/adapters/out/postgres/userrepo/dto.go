// Package userrepo provides data transfer objects and mapping functions for
// user persistence: administrators, customers and couriers share one table
// discriminated by the role column.
package userrepo

import (
	"encoding/json"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
// The courier columns are meaningful only for rows with the courier role;
// the active delivery set is stored as a JSONB array of order identifiers.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string `gorm:"uniqueIndex"`
	Role  string `gorm:"type:varchar(16);index"`

	IsAvailable         bool
	ActiveDeliveries    []byte `gorm:"type:jsonb"`
	CompletedDeliveries int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user domain aggregate to its database representation.
func fromDomain(aggregate *user.User) (UserDTO, error) {
	dto := UserDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
		Role:  aggregate.Role().String(),
	}

	if aggregate.Role() != kernel.RoleCourier {
		return dto, nil
	}

	profile, err := aggregate.CourierProfile()
	if err != nil {
		return UserDTO{}, err
	}

	active := make([]string, 0, len(profile.ActiveDeliveries()))
	for _, orderID := range profile.ActiveDeliveries() {
		active = append(active, orderID.String())
	}
	activeJSON, err := json.Marshal(active)
	if err != nil {
		return UserDTO{}, err
	}

	dto.IsAvailable = profile.IsAvailable()
	dto.ActiveDeliveries = activeJSON
	dto.CompletedDeliveries = profile.CompletedDeliveries()
	return dto, nil
}

// toDomain converts a database DTO to a user domain aggregate using RestoreUser.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	var profile *user.CourierProfile
	if role == kernel.RoleCourier {
		var rawActive []string
		if len(dto.ActiveDeliveries) > 0 {
			if err = json.Unmarshal(dto.ActiveDeliveries, &rawActive); err != nil {
				return nil, err
			}
		}

		active := make([]kernel.UUID, 0, len(rawActive))
		for _, raw := range rawActive {
			orderID, idErr := kernel.UUIDFromString(raw)
			if idErr != nil {
				return nil, idErr
			}
			active = append(active, orderID)
		}

		profile = user.RestoreCourierProfile(dto.IsAvailable, active, dto.CompletedDeliveries)
	}

	return user.RestoreUser(id, dto.Name, dto.Email, role, profile)
}
