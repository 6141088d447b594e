package enums

import "fmt"

// ActorRole identifies which side of the marketplace a token belongs to.
type ActorRole string

const (
	ActorRoleCustomer   ActorRole = "customer"
	ActorRoleRestaurant ActorRole = "restaurant"
)

var validActorRoles = []ActorRole{
	ActorRoleCustomer,
	ActorRoleRestaurant,
}

// IsValid reports whether the value is a known ActorRole.
func (a ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActorRole converts the raw string to ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
