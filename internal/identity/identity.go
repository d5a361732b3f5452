// Package identity declares the contract of the external identity
// collaborator. This service calls these operations but does not implement
// them; the provider (login, registration, session, profile store) lives
// outside this codebase.
package identity

import "context"

// RiskTolerance tags how aggressive a manager wants recommendations to be.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// ParseRiskTolerance normalizes a raw tag, defaulting to medium.
func ParseRiskTolerance(raw string) RiskTolerance {
	switch RiskTolerance(raw) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTolerance(raw)
	default:
		return RiskMedium
	}
}

// Preferences are the recommendation inputs stored on a profile.
type Preferences struct {
	FavoriteTeam  int           `json:"favoriteTeam"`
	RiskTolerance RiskTolerance `json:"riskTolerance"`
}

// FPLData links a profile to an upstream manager entry.
type FPLData struct {
	ManagerID int `json:"managerId"`
}

// Profile is the user record supplied by the identity collaborator.
type Profile struct {
	UID         string      `json:"uid"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Preferences Preferences `json:"preferences"`
	FPLData     FPLData     `json:"fplData"`
}

// Provider is the identity collaborator's surface. All operations are
// opaque; failures are the provider's own error values.
type Provider interface {
	Login(ctx context.Context, email, password string) (Profile, error)
	Register(ctx context.Context, email, password, displayName string) (Profile, error)
	Logout(ctx context.Context, uid string) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePreferences(ctx context.Context, uid string, prefs Preferences) error
	Profile(ctx context.Context, uid string) (Profile, error)
}
