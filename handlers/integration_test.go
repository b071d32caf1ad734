// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/campusboard/bus"
	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/engagement"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/profile"
	"github.com/danielhkuo/campusboard/reminder"
	"github.com/danielhkuo/campusboard/testutil"
)

// stubNotifier accepts every schedule request without arming timers.
type stubNotifier struct {
	denied bool
	count  int
}

func (s *stubNotifier) RequestPermission(ctx context.Context) error {
	if s.denied {
		return reminder.ErrPermissionDenied
	}
	return nil
}

func (s *stubNotifier) Schedule(ctx context.Context, c reminder.Content, fireAt time.Time) (string, error) {
	s.count++
	return fmt.Sprintf("n%d", s.count), nil
}

func (s *stubNotifier) Cancel(id string) {}

type engine struct {
	catalog    *CatalogHandler
	engagement *EngagementHandler
	journal    *JournalHandler
	reminder   *ReminderHandler
	profile    *ProfileHandler

	notifier *stubNotifier
	journals *journal.Repository
}

// setupEngine wires the full handler stack against an in-memory remote
// catalog feed and a fresh sqlite store.
func setupEngine(t *testing.T, remote []models.Event) *engine {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(remote)
		case http.MethodPost:
			var req models.SubmitEventRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(models.Event{ID: "assigned", Name: req.Name, Date: req.Date})
		}
	}))
	t.Cleanup(server.Close)

	st := testutil.SetupTestStore(t)
	b := bus.New()
	jr := journal.NewRepository(st, b)
	ledger := engagement.NewRepository(st, jr)
	profiles := profile.NewRepository(st)
	builder := catalog.NewBuilder(catalog.NewClient(server.URL), ledger, jr)
	notifier := &stubNotifier{}
	scheduler := reminder.NewScheduler(notifier, jr)

	return &engine{
		catalog:    NewCatalogHandler(builder),
		engagement: NewEngagementHandler(ledger, profiles),
		journal:    NewJournalHandler(jr, profiles, builder),
		reminder:   NewReminderHandler(scheduler, builder),
		profile:    NewProfileHandler(profiles),
		notifier:   notifier,
		journals:   jr,
	}
}

func upcomingDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

// TestFullEngagementWorkflow tests the complete end-to-end workflow:
// 1. Browse the catalog
// 2. Save a profile
// 3. Like an event and leave a comment
// 4. Register for the event
// 5. Verify the notification feed (newest first)
func TestFullEngagementWorkflow(t *testing.T) {
	remote := []models.Event{
		{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3), Venue: "Main Auditorium", Category: "Workshop"},
		{ID: "e2", Name: "Hack Night", Date: upcomingDate(7), Venue: "Library Lab", Category: "Hackathon"},
	}
	e := setupEngine(t, remote)

	// Step 1: Browse the catalog
	req := testutil.MakeRequest("GET", "/catalog", nil, nil)
	w := httptest.NewRecorder()
	e.catalog.GetCatalog(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view []models.Event
	testutil.AssertJSON(t, w, &view)
	if len(view) != 2 {
		t.Fatalf("Step 1 - Expected 2 events, got %d", len(view))
	}

	// Step 2: Save a profile so later actions carry the name
	p := models.Profile{Name: "Dana", Number: "555-0100", Email: "dana@campus.edu"}
	req = testutil.MakeRequest("PUT", "/profile", p, nil)
	w = httptest.NewRecorder()
	e.profile.SaveProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 3a: Like the event
	req = testutil.MakeRequest("POST", "/events/e1/like", nil, nil)
	req.SetPathValue("id", "e1")
	w = httptest.NewRecorder()
	e.engagement.Like(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var reaction models.ReactionResponse
	testutil.AssertJSON(t, w, &reaction)
	if reaction.Likes != 1 || reaction.Dislikes != 0 {
		t.Fatalf("Step 3a - Expected 1 like, got %+v", reaction)
	}

	// Step 3b: Leave a comment, attributed to the profile name
	req = testutil.MakeRequest("POST", "/events/e1/comments", models.AddCommentRequest{Text: "Count me in"}, nil)
	req.SetPathValue("id", "e1")
	w = httptest.NewRecorder()
	e.engagement.AddComment(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var comment models.Comment
	testutil.AssertJSON(t, w, &comment)
	if comment.User != "Dana" {
		t.Fatalf("Step 3b - Comment attributed to %q, want Dana", comment.User)
	}

	// Step 4: Register for the event
	regReq := models.RegisterRequest{Email: "dana@campus.edu", Quantity: "2"}
	req = testutil.MakeRequest("POST", "/events/e1/register", regReq, nil)
	req.SetPathValue("id", "e1")
	w = httptest.NewRecorder()
	e.journal.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var regResp models.RegisterResponse
	testutil.AssertJSON(t, w, &regResp)
	if regResp.Registration.EventID != "e1" || regResp.Registration.UserName != "Dana" {
		t.Fatalf("Step 4 - Unexpected registration: %+v", regResp.Registration)
	}

	// Step 5: Submit feedback, then read the notification feed
	req = testutil.MakeRequest("POST", "/events/e1/feedback", models.FeedbackRequest{Feedback: "great lineup"}, nil)
	req.SetPathValue("id", "e1")
	w = httptest.NewRecorder()
	e.engagement.AddFeedback(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("GET", "/notifications", nil, nil)
	w = httptest.NewRecorder()
	e.journal.ListNotifications(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var notifications []string
	testutil.AssertJSON(t, w, &notifications)
	if len(notifications) != 2 {
		t.Fatalf("Step 5 - Expected 2 notifications, got %v", notifications)
	}
	// Newest first: feedback came after the registration.
	if notifications[0] != "Feedback submitted by Dana" {
		t.Errorf("Step 5 - Expected feedback notification first, got %q", notifications[0])
	}
	if notifications[1] != "User Dana registered for Tech Fest" {
		t.Errorf("Step 5 - Expected registration notification second, got %q", notifications[1])
	}
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	e := setupEngine(t, nil)

	req := testutil.MakeRequest("POST", "/events/e1/comments", models.AddCommentRequest{Text: "   "}, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.engagement.AddComment(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterValidatesFields(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3)}}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("POST", "/events/e1/register", models.RegisterRequest{Email: "", Quantity: "2"}, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.journal.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterUnknownEvent(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3)}}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("POST", "/events/nope/register", models.RegisterRequest{Email: "a@b.edu", Quantity: "1"}, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	e.journal.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestRegisterAnonymousWithoutProfile(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3)}}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("POST", "/events/e1/register", models.RegisterRequest{Email: "a@b.edu", Quantity: "1"}, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.journal.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RegisterResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Registration.UserName != models.AnonymousUser {
		t.Errorf("Expected %q, got %q", models.AnonymousUser, resp.Registration.UserName)
	}
}

func TestCatalogFilterQueryParams(t *testing.T) {
	remote := []models.Event{
		{ID: "e1", Name: "Library Hack", Date: upcomingDate(1), Category: "Workshop"},
		{ID: "e2", Name: "Chess Open", Date: upcomingDate(2), Category: "Workshop"},
		{ID: "e3", Name: "Library Tour", Date: upcomingDate(3), Category: "Sports"},
	}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("GET", "/catalog?category=Workshop&q=lib", nil, nil)
	w := httptest.NewRecorder()
	e.catalog.GetCatalog(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view []models.Event
	testutil.AssertJSON(t, w, &view)
	if len(view) != 1 || view[0].ID != "e1" {
		t.Errorf("Expected only e1 to match, got %v", view)
	}
}

func TestSetReminderSchedulesDailyNotifications(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3)}}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("POST", "/events/e1/reminder", nil, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.reminder.SetReminder(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ReminderResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Scheduled != 4 {
		t.Errorf("Expected 4 scheduled notifications for an event 3 days out, got %d", resp.Scheduled)
	}
	if resp.EventStarts == "" {
		t.Error("Expected a humanized event start")
	}
}

func TestSetReminderPermissionDenied(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(3)}}
	e := setupEngine(t, remote)
	e.notifier.denied = true

	req := testutil.MakeRequest("POST", "/events/e1/reminder", nil, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.reminder.SetReminder(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestSetReminderEventPassed(t *testing.T) {
	remote := []models.Event{{ID: "e1", Name: "Tech Fest", Date: upcomingDate(-1)}}
	e := setupEngine(t, remote)

	req := testutil.MakeRequest("POST", "/events/e1/reminder", nil, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	e.reminder.SetReminder(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

// With the feed unreachable and no cached view, event lookups degrade to
// a plain 404 rather than failing the request outright.
func TestSetReminderFeedUnreachable(t *testing.T) {
	st := testutil.SetupTestStore(t)
	jr := journal.NewRepository(st, bus.New())
	ledger := engagement.NewRepository(st, jr)
	builder := catalog.NewBuilder(catalog.NewClient("http://127.0.0.1:1"), ledger, jr)
	h := NewReminderHandler(reminder.NewScheduler(&stubNotifier{}, jr), builder)

	req := testutil.MakeRequest("POST", "/events/e1/reminder", nil, nil)
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	h.SetReminder(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestProfileRoundTrip(t *testing.T) {
	e := setupEngine(t, nil)

	want := models.Profile{Name: "Priya", Number: "555-0199", Email: "priya@campus.edu", Pic: "data:image/png;base64,xyz"}
	req := testutil.MakeRequest("PUT", "/profile", want, nil)
	w := httptest.NewRecorder()
	e.profile.SaveProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/profile", nil, nil)
	w = httptest.NewRecorder()
	e.profile.GetProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.Profile
	testutil.AssertJSON(t, w, &got)
	if got != want {
		t.Errorf("Round-trip mismatch: saved %+v, loaded %+v", want, got)
	}
}

func TestSubmitEventRequiresName(t *testing.T) {
	e := setupEngine(t, nil)

	req := testutil.MakeRequest("POST", "/events", models.SubmitEventRequest{Name: "  "}, nil)
	w := httptest.NewRecorder()
	e.catalog.SubmitEvent(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
