package domain

// Request-context keys populated by the auth middleware.
const (
	RequesterIdCtxKey    = "kt-requesterId"
	RequesterPhoneCtxKey = "kt-requesterPhone"
	RequesterRoleCtxKey  = "kt-requesterRole"
	RequesterNameCtxKey  = "kt-requesterName"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Campaign beneficiary categories.
const (
	CategoryHealth      = "HEALTH"
	CategoryEducation   = "EDUCATION"
	CategoryEnvironment = "ENVIRONMENT"
	CategoryAnimals     = "ANIMALS"
	CategoryCommunity   = "COMMUNITY"
	CategoryEmergency   = "EMERGENCY"
	CategoryOther       = "OTHER"
)

var campaignCategories = map[string]bool{
	CategoryHealth:      true,
	CategoryEducation:   true,
	CategoryEnvironment: true,
	CategoryAnimals:     true,
	CategoryCommunity:   true,
	CategoryEmergency:   true,
	CategoryOther:       true,
}

func IsValidCategory(category string) bool {
	return campaignCategories[category]
}

// Who the campaign benefits.
const (
	ForAPerson = "FOR_A_PERSON"
	ForAAnimal = "FOR_A_ANIMAL"
)

func IsValidForWho(forWho string) bool {
	return forWho == ForAPerson || forWho == ForAAnimal
}
