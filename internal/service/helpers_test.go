package service_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/tripplanner/backend/internal/events"
	"github.com/tripplanner/backend/internal/notify"
	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/testutil"
)

// now is the fixed "current time" every workflow test runs at.
var now = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

// recordingDispatcher is a notify.Dispatcher that remembers what it sent.
// When fail is set and returns an error for a message, that send fails and
// is not recorded.
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []notify.Message
	fail func(notify.Message) error
}

func (d *recordingDispatcher) Send(_ context.Context, msg notify.Message) (notify.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail != nil {
		if err := d.fail(msg); err != nil {
			return notify.Receipt{}, err
		}
	}
	d.sent = append(d.sent, msg)
	return notify.Receipt{MessageID: "<test@localhost>"}, nil
}

func (d *recordingDispatcher) messages() []notify.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Message(nil), d.sent...)
}

// sentTo returns the recipients in send order.
func (d *recordingDispatcher) sentTo() []string {
	var to []string
	for _, m := range d.messages() {
		to = append(to, m.To)
	}
	return to
}

var _ notify.Dispatcher = (*recordingDispatcher)(nil)

// recordingPublisher is an events.Publisher that remembers event types.
type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, e.Type)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

// workflow wires every service over one in-memory store.
type workflow struct {
	store        *testutil.MemStore
	mail         *recordingDispatcher
	events       *recordingPublisher
	trips        *service.TripService
	participants *service.ParticipantService
	activities   *service.ActivityService
	links        *service.LinkService
	itinerary    *service.ItineraryService
}

func newWorkflow(t *testing.T) *workflow {
	t.Helper()

	w := &workflow{
		store:  testutil.NewMemStore(),
		mail:   &recordingDispatcher{},
		events: &recordingPublisher{},
	}
	log := discardLogger()
	clock := service.FixedClock(now)
	inviter := service.NewInviter(w.mail, notify.NewComposer(time.UTC), service.InviterConfig{
		BaseURL:     "https://trips.test/",
		Timeout:     time.Second,
		Concurrency: 4,
	}, log)

	w.trips = service.NewTripService(w.store.Trips(), w.store.Participants(), inviter, w.events, clock, log)
	w.participants = service.NewParticipantService(w.store.Trips(), w.store.Participants(), inviter, w.events, clock, log)
	w.activities = service.NewActivityService(w.store.Trips(), w.store.Activities(), time.UTC)
	w.links = service.NewLinkService(w.store.Trips(), w.store.Links())
	w.itinerary = service.NewItineraryService(w.store.Trips(), w.store.Activities())
	return w
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }
