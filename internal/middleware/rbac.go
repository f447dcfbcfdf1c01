package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/utils"
)

// Back-office sections guarded by the capability table.
const (
	SectionMembers      = "members"
	SectionApplications = "applications"
	SectionNews         = "news"
	SectionGallery      = "gallery"
	SectionPanel        = "panel"
	SectionUsers        = "users"
	SectionSettings     = "settings"
	SectionActivity     = "activity"
)

// roleCapabilities maps each role to the sections it may access. Roles form a
// closed enumeration; an unknown role has no capabilities.
var roleCapabilities = map[string]map[string]struct{}{
	models.RoleRoot: {
		SectionMembers:      {},
		SectionApplications: {},
		SectionNews:         {},
		SectionGallery:      {},
		SectionPanel:        {},
		SectionUsers:        {},
		SectionSettings:     {},
		SectionActivity:     {},
	},
	models.RoleAdmin: {
		SectionMembers:      {},
		SectionApplications: {},
		SectionNews:         {},
		SectionGallery:      {},
		SectionPanel:        {},
		SectionSettings:     {},
		SectionActivity:     {},
	},
	models.RolePanel: {
		SectionNews:    {},
		SectionGallery: {},
		SectionPanel:   {},
	},
}

// RoleCanAccess reports whether the given role may access the section.
func RoleCanAccess(role, section string) bool {
	capabilities, ok := roleCapabilities[strings.ToLower(strings.TrimSpace(role))]
	if !ok {
		return false
	}
	_, allowed := capabilities[section]
	return allowed
}

// RequireSection guards a route group with the capability table.
func RequireSection(section string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := roleFromContext(c)
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !RoleCanAccess(role, section) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func roleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("admin_role"); v != nil {
		if role, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(role))
		}
	}
	return ""
}
