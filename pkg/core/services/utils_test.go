package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

func testConfig() *config.Config {
	return &config.Config{
		PortalName:             "Test Portal",
		SeedDataPath:           "seed_data.yaml",
		TokenSigningKey:        "portal-test-signing-key",
		SessionTTLMinutes:      60,
		NotificationTTLMinutes: 60,
		DemoPassword:           "volunteer123",
	}
}

// portalFixture is a seeded store with one published event, one future
// session, and the three roles represented.
type portalFixture struct {
	store    *db.MemStore
	student  model.User
	student2 model.User
	parent   model.User
	admin    model.User
	event    model.Event
	session  model.Session
}

// newFixture seeds a store with a future session holding the given pool
// capacities.
func newFixture(t *testing.T, studentCap, parentCap int) *portalFixture {
	t.Helper()
	store := db.NewMemStore()

	f := &portalFixture{
		store:    store,
		student:  model.User{ID: "student-1", Name: "Amira", Email: "amira@example.org", Role: model.RoleStudent, Chapter: "East"},
		student2: model.User{ID: "student-2", Name: "Cleo", Email: "cleo@example.org", Role: model.RoleStudent, Chapter: "East"},
		parent:   model.User{ID: "parent-1", Name: "Ben", Email: "ben@example.org", Role: model.RoleParent, Chapter: "West"},
		admin:    model.User{ID: "admin-1", Name: "Dana", Email: "dana@example.org", Role: model.RoleAdmin},
		event:    model.Event{ID: "event-1", Name: "Park Cleanup", Status: model.EventPublished},
		session: model.Session{
			ID:              "session-1",
			EventID:         "event-1",
			Start:           time.Now().Add(48 * time.Hour),
			End:             time.Now().Add(51 * time.Hour),
			StudentCapacity: studentCap,
			ParentCapacity:  parentCap,
		},
	}

	for _, user := range []model.User{f.student, f.student2, f.parent, f.admin} {
		u := user
		require.NoError(t, store.InsertUser(&u))
	}
	require.NoError(t, store.InsertEvent(&f.event))
	require.NoError(t, store.InsertSession(&f.session))

	return f
}

// addPastSession adds a session that already started to the fixture event.
func (f *portalFixture) addPastSession(t *testing.T) model.Session {
	t.Helper()
	session := model.Session{
		ID:              "session-past",
		EventID:         f.event.ID,
		Start:           time.Now().Add(-48 * time.Hour),
		End:             time.Now().Add(-45 * time.Hour),
		StudentCapacity: 5,
		ParentCapacity:  5,
	}
	require.NoError(t, f.store.InsertSession(&session))
	return session
}
