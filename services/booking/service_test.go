package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"courtbook/models"
	"courtbook/services/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []models.Reservation
	findErr      error
	insertErr    error
}

func (f *fakeReservationRepo) Insert(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	res.ID = fmt.Sprintf("res-%d", len(f.reservations)+1)
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeReservationRepo) GetByCourtAndDate(_ context.Context, courtID, date string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Reservation
	for _, res := range f.reservations {
		if res.CourtID == courtID && res.Date == date {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) GetByCourt(_ context.Context, courtID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Reservation
	for _, res := range f.reservations {
		if res.CourtID == courtID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountRangeEntriesByDate(_ context.Context, courtID string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	counts := make(map[string]int)
	for _, res := range f.reservations {
		if res.CourtID == courtID {
			counts[res.Date] += len(res.Ranges)
		}
	}
	return counts, nil
}

func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

func (f *fakeReservationRepo) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

func (f *fakeReservationRepo) seed(res models.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = append(f.reservations, res)
}

type fakeCourtRepo struct {
	courts map[string]models.Court
}

func (f *fakeCourtRepo) Insert(_ context.Context, court *models.Court) error {
	f.courts[court.ID] = *court
	return nil
}

func (f *fakeCourtRepo) GetByID(_ context.Context, id string) (*models.Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return &court, nil
}

func (f *fakeCourtRepo) GetAll(_ context.Context) ([]models.Court, error) {
	var out []models.Court
	for _, c := range f.courts {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourtRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.courts[id]
	return ok, nil
}

func (f *fakeCourtRepo) EnsureIndexes() error { return nil }

type recordingDispatcher struct {
	mu       sync.Mutex
	payloads []models.NotificationPayload
	err      error
}

func (d *recordingDispatcher) DispatchReservationNotice(_ context.Context, payload models.NotificationPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.payloads = append(d.payloads, payload)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.payloads)
}

func newTestService() (*DefaultReservationService, *fakeReservationRepo, *recordingDispatcher) {
	repo := &fakeReservationRepo{}
	courts := &fakeCourtRepo{courts: map[string]models.Court{
		"R1": {ID: "R1", Name: "Court One", HourlyPrice: 250, Active: true},
	}}
	dispatcher := &recordingDispatcher{}
	return NewDefaultReservationService(repo, courts, dispatcher, nil), repo, dispatcher
}

func createReq(courtID, date, ranges string) models.CreateReservationRequest {
	return models.CreateReservationRequest{
		CourtID:       courtID,
		CustomerName:  "Dana",
		CustomerPhone: "+15550100",
		Date:          date,
		Ranges:        json.RawMessage(ranges),
		AmountPaid:    500,
	}
}

func TestCreateReservationSuccess(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	ctx := context.Background()

	resp, err := svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[10,12],[14,15]]`))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Reservation.ID)
	assert.Equal(t, [][]int{{10, 12}, {14, 15}}, resp.Reservation.Ranges)
	assert.Equal(t, []int{10, 14}, resp.BookedStartHours)
	assert.Equal(t, 1, repo.size())
	assert.Equal(t, 1, dispatcher.count())

	unavailable, err := svc.UnavailableRanges(ctx, "R1", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []slot.HourRange{{Start: 10, End: 12}, {Start: 14, End: 15}}, unavailable)
}

func TestCreateReservationConflict(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[10,12],[14,15]]`))
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[11,13]]`))
	require.Error(t, err)

	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, slot.HourRange{Start: 11, End: 13}, cErr.Candidate)
	assert.Equal(t, slot.HourRange{Start: 10, End: 12}, cErr.Existing)

	// No partial admission, no side effects.
	assert.Equal(t, 1, repo.size())
	assert.Equal(t, 1, dispatcher.count())
}

func TestTouchingEndpointsDoNotConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[6,7],[9,10]]`))
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[7,8],[8,9]]`))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.size())
}

// A single-range reservation is persisted in the degenerate [start] form
// and re-expands to exactly one hour, whatever the requested width. This
// pins the historical behavior: the end hour of a lone multi-hour range is
// lost at the storage boundary.
func TestSingleRangeDegenerateStorage(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[10,12]]`))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{10}}, resp.Reservation.Ranges)
	assert.Equal(t, []int{10}, resp.BookedStartHours)

	unavailable, err := svc.UnavailableRanges(ctx, "R1", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []slot.HourRange{{Start: 10, End: 11}}, unavailable)

	// Only the first hour is protected: [11,13) slips past the check.
	_, err = svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[11,13]]`))
	require.NoError(t, err)

	// The stored hour itself is still guarded.
	_, err = svc.CreateReservation(ctx, createReq("R1", "2024-01-10", `[[10,13]]`))
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, 2, repo.size())
}

func TestCreateReservationValidation(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateReservationRequest
	}{
		{"missing court", createReq("", "2024-01-10", `[[10,12]]`)},
		{"bad date", createReq("R1", "10/01/2024", `[[10,12]]`)},
		{"wrong arity", createReq("R1", "2024-01-10", `[[5]]`)},
		{"empty ranges", createReq("R1", "2024-01-10", `[]`)},
		{"start after end", createReq("R1", "2024-01-10", `[[12,10]]`)},
		{"non-numeric hours", createReq("R1", "2024-01-10", `[["x","y"]]`)},
		{"negative amount", func() models.CreateReservationRequest {
			r := createReq("R1", "2024-01-10", `[[10,12]]`)
			r.AmountPaid = -1
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReservation(ctx, tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	assert.Equal(t, 0, repo.size())
	assert.Equal(t, 0, dispatcher.count())
}

func TestCreateReservationUnknownCourt(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreateReservation(context.Background(), createReq("R9", "2024-01-10", `[[10,12]]`))
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "R9", nfErr.ID)
	assert.Equal(t, 0, repo.size())
}

func TestCreateReservationStoreFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.findErr = fmt.Errorf("connection reset")

	_, err := svc.CreateReservation(context.Background(), createReq("R1", "2024-01-10", `[[10,12]]`))
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
}

func TestNotificationFailureDoesNotFailCreate(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	dispatcher.err = fmt.Errorf("queue unavailable")

	resp, err := svc.CreateReservation(context.Background(), createReq("R1", "2024-01-10", `[[10,12]]`))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reservation.ID)
	assert.Equal(t, 1, repo.size())
}

func TestUnavailableRangesPreservesDuplicates(t *testing.T) {
	svc, repo, _ := newTestService()

	// Two overlapping reservations can coexist in storage when they were
	// written by racing processes; the query must surface both verbatim.
	repo.seed(models.Reservation{ID: "a", CourtID: "R1", Date: "2024-01-10", Ranges: [][]int{{6, 7}}})
	repo.seed(models.Reservation{ID: "b", CourtID: "R1", Date: "2024-01-10", Ranges: [][]int{{6, 7}, {8, 10}}})

	unavailable, err := svc.UnavailableRanges(context.Background(), "R1", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []slot.HourRange{{Start: 6, End: 7}, {Start: 6, End: 7}, {Start: 8, End: 10}}, unavailable)
}

func TestFullyBookedDates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// 15 single-hour reservations: not yet fully booked.
	for hour := 0; hour < 15; hour++ {
		_, err := svc.CreateReservation(ctx, createReq("R1", "2024-02-01", fmt.Sprintf(`[[%d,%d]]`, hour, hour+1)))
		require.NoError(t, err)
	}
	dates, err := svc.FullyBookedDates(ctx, "R1")
	require.NoError(t, err)
	assert.Empty(t, dates)

	// The 16th entry tips the date over the threshold.
	_, err = svc.CreateReservation(ctx, createReq("R1", "2024-02-01", `[[15,16]]`))
	require.NoError(t, err)

	dates, err = svc.FullyBookedDates(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-01"}, dates)
}

// The legacy metric counts stored range entries, not hours: two wide pairs
// covering the whole day still only count 2.
func TestFullyBookedDatesCountsEntriesNotHours(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, createReq("R1", "2024-02-02", `[[0,12],[12,24]]`))
	require.NoError(t, err)

	dates, err := svc.FullyBookedDates(ctx, "R1")
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestBookedHourTotals(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.seed(models.Reservation{ID: "a", CourtID: "R1", Date: "2024-02-02", Ranges: [][]int{{8, 12}, {14, 15}}})
	repo.seed(models.Reservation{ID: "b", CourtID: "R1", Date: "2024-02-02", Ranges: [][]int{{16}}})
	repo.seed(models.Reservation{ID: "c", CourtID: "R1", Date: "2024-02-03", Ranges: [][]int{{6}}})

	totals, err := svc.BookedHourTotals(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-02-02": 6, "2024-02-03": 1}, totals)
}

func TestCheckConflictFailsClosedOnCorruptRanges(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.seed(models.Reservation{ID: "a", CourtID: "R1", Date: "2024-01-10", Ranges: [][]int{{6, 7, 8}}})

	err := svc.CheckConflict(context.Background(), "R1", "2024-01-10", []slot.HourRange{{Start: 10, End: 11}})
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
}
