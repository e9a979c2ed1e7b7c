package memory

import (
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

// Seed is the demo data set served when DATA_SOURCE=memory.
type Seed struct {
	Users     []models.User
	Tickets   []models.Ticket
	Equipment []models.Equipment
	Snippets  []models.Snippet
}

func DemoSeed(now time.Time) Seed {
	day := 24 * time.Hour
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	users := []models.User{
		{ID: "user-alice", Email: "alice@example.com", Name: "Alice Wonderland", Role: models.RoleUser, BusinessUnit: "Lofty Building Group"},
		{ID: "user-bob", Email: "bob@example.com", Name: "Bob The Builder", Role: models.RoleUser, BusinessUnit: "Lofty Homes"},
		{ID: "it-charlie", Email: "charlie@support.com", Name: "Charlie Root", Role: models.RoleITSupport, BusinessUnit: "Corporate"},
		{ID: "it-diana", Email: "diana@support.com", Name: "Diana Prince", Role: models.RoleAdmin, BusinessUnit: "Corporate"},
	}
	for i := range users {
		users[i].CreatedAt, users[i].UpdatedAt = now, now
	}
	return Seed{
		Users: users,
		Tickets: []models.Ticket{
			{
				ID: 1, Subject: "Application keeps crashing on startup",
				Message:       "My main work application crashes every time I try to open it.",
				RequesterName: "Alice Wonderland", RequesterEmail: "alice@example.com",
				ProblemType: "Software", Urgency: models.UrgencyHigh, Status: models.StatusOpen,
				AssignedTo: "it-charlie", CreatedBy: "user-alice",
				CreatedAt: now.Add(-3 * day), UpdatedAt: now.Add(-day),
			},
			{
				ID: 2, Subject: "Printer not working",
				Message:       "The office printer on the 2nd floor shows a paper jam that is not there.",
				RequesterName: "Bob The Builder", RequesterEmail: "bob@example.com",
				ProblemType: "Hardware", Urgency: models.UrgencyMedium, Status: models.StatusInProgress,
				AssignedTo: "it-diana", CreatedBy: "user-bob",
				CreatedAt: now.Add(-5 * day), UpdatedAt: now.Add(-2 * time.Hour),
			},
		},
		Equipment: []models.Equipment{
			{ID: 1, Name: "Dell XPS 15", Type: "Laptop", SerialNumber: "DXPS15-001", AssignedTo: "user-alice", AcquiredAt: date("2023-01-15"), Status: "Operational", CreatedAt: date("2023-01-15"), UpdatedAt: date("2023-01-15")},
			{ID: 2, Name: "HP LaserJet Pro M404dn", Type: "Printer", SerialNumber: "HPLJP-002", AcquiredAt: date("2022-06-20"), Status: "Operational", CreatedAt: date("2022-06-20"), UpdatedAt: date("2022-06-20")},
			{ID: 3, Name: "Cisco Catalyst 2960", Type: "Switch", SerialNumber: "CISCO-003", AcquiredAt: date("2021-11-05"), Status: "Maintenance", BusinessUnit: "Corporate", CreatedAt: date("2021-11-05"), UpdatedAt: date("2021-11-05")},
		},
		Snippets: []models.Snippet{
			{ID: "snippet-1", TicketID: 1, Name: "Password Reset Instructions", Text: "To reset your password, please visit the portal and follow the on-screen instructions.", CreatedBy: "it-charlie", CreatedAt: now, UpdatedAt: now},
			{ID: "snippet-2", TicketID: 1, Name: "Software Reinstall Guide", Text: "Uninstall the current version, restart, then install the latest version.", CreatedBy: "it-charlie", CreatedAt: now, UpdatedAt: now},
		},
	}
}
