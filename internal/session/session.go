// Package session carries the authenticated caller through a request.
// The auth middleware builds one Session per request from the JWT claims and
// stores it in the gin context; handlers read it with From.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"candidature-api/internal/domain"
)

// Role is a platform role carried in the token
type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleRegionalCoordinator   Role = "regional_coordinator"
	RoleComponentCoordinator  Role = "component_coordinator"
	RoleIncubationCoordinator Role = "incubation_coordinator"
	RoleMentor                Role = "mentor"
	RoleProjectHolder         Role = "project_holder"
)

// Coordinators lists the three coordinator roles.
var Coordinators = []Role{RoleRegionalCoordinator, RoleComponentCoordinator, RoleIncubationCoordinator}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := navigation[r]
	return ok
}

const contextKey = "session"

// Session is the authenticated caller.
type Session struct {
	UserID    uuid.UUID `json:"userId"`
	Role      Role      `json:"role"`
	Region    string    `json:"region,omitempty"`
	Component string    `json:"component,omitempty"`
	Token     string    `json:"-"`
}

// HasRole reports whether the session has one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// RegionScope returns the region a regional coordinator is limited to, or "".
func (s *Session) RegionScope() string {
	if s != nil && s.Role == RoleRegionalCoordinator {
		return s.Region
	}
	return ""
}

// RegionRestricted reports whether the session only sees one region.
func (s *Session) RegionRestricted() bool {
	return s != nil && s.Role == RoleRegionalCoordinator
}

// CanAccessRegion reports whether a candidature of region is visible. A
// regional coordinator matches either language of the region and, without a
// region of their own, sees nothing.
func (s *Session) CanAccessRegion(region domain.Bilingual) bool {
	if !s.RegionRestricted() {
		return true
	}
	scope := strings.TrimSpace(s.Region)
	if scope == "" {
		return false
	}
	return strings.TrimSpace(region.FR) == scope || strings.TrimSpace(region.AR) == scope
}

var (
	ErrMissingUserID = errors.New("user id not found in token")
	ErrInvalidRole   = errors.New("unknown role in token")
	ErrMissingRegion = errors.New("regional coordinator token has no region")
)

// FromClaims builds a session from verified token claims. The user id is read
// from user_id, then sub.
func FromClaims(claims jwt.MapClaims, token string) (*Session, error) {
	var raw string
	if uid, ok := claims["user_id"].(string); ok {
		raw = uid
	} else if sub, ok := claims["sub"].(string); ok {
		raw = sub
	} else {
		return nil, ErrMissingUserID
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", raw, err)
	}

	role := Role(stringClaim(claims, "role"))
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	region := strings.TrimSpace(stringClaim(claims, "region"))
	if role == RoleRegionalCoordinator && region == "" {
		return nil, ErrMissingRegion
	}

	return &Session{
		UserID:    userID,
		Role:      role,
		Region:    region,
		Component: stringClaim(claims, "component"),
		Token:     token,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// Set stores s in the request context.
func Set(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// From returns the session of the request, if the caller is authenticated.
func From(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}

// NavItem is one entry of the role-specific sidebar.
type NavItem struct {
	Key   string           `json:"key"`
	Label domain.Bilingual `json:"label"`
	Path  string           `json:"path"`
}

var (
	navDashboard    = NavItem{Key: "dashboard", Label: domain.NewBilingual("Tableau de bord", "لوحة القيادة"), Path: "/dashboard"}
	navCandidatures = NavItem{Key: "candidatures", Label: domain.NewBilingual("Candidatures", "الترشحات"), Path: "/candidatures"}
	navBuilder      = NavItem{Key: "builder", Label: domain.NewBilingual("Créer un formulaire", "إنشاء استمارة"), Path: "/candidatures/add"}
	navTemplates    = NavItem{Key: "templates", Label: domain.NewBilingual("Modèles", "النماذج"), Path: "/candidatures/templates"}
	navSubmissions  = NavItem{Key: "submissions", Label: domain.NewBilingual("Soumissions", "المطالب"), Path: "/submissions"}
	navEvaluations  = NavItem{Key: "evaluations", Label: domain.NewBilingual("Évaluations", "التقييمات"), Path: "/evaluations"}
	navFeedback     = NavItem{Key: "feedback", Label: domain.NewBilingual("Retours", "الملاحظات"), Path: "/feedback"}
	navProjects     = NavItem{Key: "projects", Label: domain.NewBilingual("Mes projets", "مشاريعي"), Path: "/projects"}
	navUsers        = NavItem{Key: "users", Label: domain.NewBilingual("Utilisateurs", "المستخدمون"), Path: "/users"}
)

var navigation = map[Role][]NavItem{
	RoleAdmin:                 {navDashboard, navCandidatures, navBuilder, navTemplates, navSubmissions, navEvaluations, navUsers},
	RoleRegionalCoordinator:   {navDashboard, navCandidatures, navSubmissions, navEvaluations},
	RoleComponentCoordinator:  {navDashboard, navCandidatures, navSubmissions, navEvaluations},
	RoleIncubationCoordinator: {navDashboard, navCandidatures, navSubmissions, navFeedback},
	RoleMentor:                {navDashboard, navSubmissions, navEvaluations, navFeedback},
	RoleProjectHolder:         {navDashboard, navProjects, navFeedback},
}

// Navigation returns the sidebar of role. Unknown roles get none.
func Navigation(role Role) []NavItem {
	items := navigation[role]
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}
