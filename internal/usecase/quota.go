package usecase

import (
	"time"

	"careerbuddy/internal/domain"
)

// Pricing in Naira. Paystack charges in kobo (x100).
const (
	PaidGenerationPrice   = 7500
	PremiumPackagePrice   = 7500
	FreeTierTotal         = 2
	MaxGenerationsPerRole = 5
)

// Monthly per-type limits. This table is authoritative for the gate; the
// free-tier lifetime total and the per-role cap apply on top of it.
var quotaLimits = map[domain.Tier]map[domain.DocumentType]int{
	domain.TierFree: {
		domain.DocResume: 1,
		domain.DocCV:     1,
		domain.DocCover:  0,
		domain.DocRevamp: 1,
	},
	domain.TierPro: {
		domain.DocResume: 2,
		domain.DocCV:     2,
		domain.DocCover:  1,
		domain.DocRevamp: 1,
	},
}

func QuotaLimit(tier domain.Tier, dt domain.DocumentType) int {
	if limits, ok := quotaLimits[tier]; ok {
		return limits[dt]
	}
	return 0
}

// QuotaGate is the production Gate implementation.
type QuotaGate struct{}

func NewQuotaGate() *QuotaGate { return &QuotaGate{} }

func (g *QuotaGate) CanGenerate(u *domain.User, dt domain.DocumentType) Decision {
	limit := QuotaLimit(u.Tier, dt)
	if limit == 0 {
		return Decision{Allowed: false, Reason: ReasonDocumentNotAllowed}
	}

	if u.DocumentCount(dt) >= limit {
		return Decision{Allowed: false, Reason: ReasonQuotaExceeded, Limit: limit}
	}

	if u.Tier == domain.TierFree && u.TotalGenerations() >= FreeTierTotal {
		return Decision{Allowed: false, Reason: ReasonQuotaExceeded, Limit: FreeTierTotal}
	}

	return Decision{Allowed: true, Reason: ReasonOK, Limit: limit}
}

// CanGenerateForRole applies the per-role cap on top of the type quota.
func CanGenerateForRole(u *domain.User, role string) bool {
	return role == "" || u.RoleCount(role) < MaxGenerationsPerRole
}

// PDFAllowed reports whether re-delivery in PDF form is available to the user.
func PDFAllowed(u *domain.User) bool {
	return u.Tier == domain.TierPro
}

// ResetQuotaIfDue zeroes the monthly counters once the reset date passes.
// Returns true when the user was mutated and needs saving.
func ResetQuotaIfDue(u *domain.User, now time.Time) bool {
	if u.QuotaResetsAt.IsZero() || now.Before(u.QuotaResetsAt) {
		return false
	}
	u.DocumentCounts = map[string]int{}
	u.QuotaResetsAt = now.AddDate(0, 1, 0)
	return true
}

// ExpirePremiumIfDue downgrades a pro user whose subscription lapsed.
// Returns true when the user was mutated and needs saving.
func ExpirePremiumIfDue(u *domain.User, now time.Time) bool {
	if u.Tier != domain.TierPro || u.PremiumExpiresAt == nil || now.Before(*u.PremiumExpiresAt) {
		return false
	}
	u.Tier = domain.TierFree
	u.PremiumExpiresAt = nil
	return true
}

// UpgradeToPremium flips the user to pro with a 30-day window and a fresh
// monthly quota.
func UpgradeToPremium(u *domain.User, now time.Time) {
	expires := now.AddDate(0, 0, 30)
	u.Tier = domain.TierPro
	u.PremiumExpiresAt = &expires
	u.DocumentCounts = map[string]int{}
	u.QuotaResetsAt = now.AddDate(0, 1, 0)
}
