package report

import (
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

func day(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func fixture() *Snapshot {
	return &Snapshot{
		Users: []models.User{
			{ID: "u1", Name: "Alice Wonderland", Email: "alice@example.com", Role: models.RoleUser},
			{ID: "u2", Name: "Bob The Builder", Email: "bob@example.com", Role: models.RoleUser},
			{ID: "it1", Name: "Charlie Root", Email: "charlie@support.com", Role: models.RoleITSupport},
		},
		Tickets: []models.Ticket{
			{ID: 1, Subject: "App crashes", RequesterName: "Alice Wonderland", RequesterEmail: "alice@example.com",
				Urgency: models.UrgencyHigh, Status: models.StatusOpen, AssignedTo: "it1",
				CreatedAt: day(2024, 1, 10, 9, 0), UpdatedAt: day(2024, 1, 11, 9, 0)},
			{ID: 2, Subject: "Printer jam", RequesterName: "Bob The Builder", RequesterEmail: "BOB@example.com",
				Urgency: models.UrgencyMedium, Status: models.StatusClosed,
				CreatedAt: day(2024, 1, 31, 23, 59), UpdatedAt: day(2024, 2, 2, 8, 0)},
			{ID: 3, Subject: "VPN down", RequesterName: "Alice Wonderland", RequesterEmail: "alice@example.com",
				Urgency: models.UrgencyCritical, Status: models.StatusInProgress, AssignedTo: "ghost",
				CreatedAt: day(2024, 2, 1, 0, 0), UpdatedAt: day(2024, 2, 1, 1, 0)},
		},
		Equipment: []models.Equipment{
			{ID: 1, Name: "Dell XPS 15", Type: "Laptop", SerialNumber: "DXPS15-001", AssignedTo: "u1",
				AcquiredAt: day(2023, 1, 15, 0, 0), Status: "Operational"},
			{ID: 2, Name: "HP LaserJet", Type: "Printer", SerialNumber: "HPLJP-002",
				AcquiredAt: day(2022, 6, 20, 0, 0), Status: "Operational"},
			{ID: 3, Name: "Cisco 2960", Type: "Switch", SerialNumber: "CISCO-003", AssignedTo: "missing-id",
				AcquiredAt: day(2021, 11, 5, 0, 0), Status: "Maintenance"},
			{ID: 4, Name: "ThinkPad", Type: "Laptop", SerialNumber: "TP-004", AssignedTo: "u1",
				Status: "In Repair"},
		},
	}
}

func column(t Table, key string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[key].String()
	}
	return out
}
