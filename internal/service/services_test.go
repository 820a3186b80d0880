package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/storage/memory"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// recordedEvent captures one Notifier call for assertions.
type recordedEvent struct {
	Target string // room id, "platform" or "privileged"
	Event  any
}

// fakeNotifier records broadcasts instead of delivering them.
type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) BroadcastToRoom(room string, event any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Target: room, Event: event})
}

func (f *fakeNotifier) BroadcastToPlatform(event any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Target: domain.PlatformRoom, Event: event})
}

func (f *fakeNotifier) BroadcastToPrivileged(event any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Target: "privileged", Event: event})
}

func (f *fakeNotifier) recorded() []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedEvent, len(f.events))
	copy(out, f.events)
	return out
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
			Issuer:      "radio-backend-test",
		},
		Uploads: config.UploadsConfig{
			Dir:       t.TempDir(),
			MaxSizeMB: 1,
		},
	}
}

func newTestServices(t *testing.T) (*Services, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	svcs := NewServices(memory.NewStore(), testConfig(t), notifier, zap.NewNop())
	return svcs, notifier
}

func mustRegister(t *testing.T, svcs *Services, username string, role domain.Role) *domain.User {
	t.Helper()
	resp, err := svcs.User.Register(context.Background(), &domain.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter2hunter2",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp.User
}

func mustCreateStation(t *testing.T, svcs *Services, ownerID, name string) *domain.Station {
	t.Helper()
	station, err := svcs.Station.Create(context.Background(), ownerID, &domain.StationCreate{
		Name:  name,
		Genre: "electronic",
	})
	if err != nil {
		t.Fatalf("create station %s: %v", name, err)
	}
	return station
}
