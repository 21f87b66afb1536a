//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/domain/cartype"
	"carrental/internal/infra"
	"carrental/internal/infra/repository"
	"carrental/internal/pkg/clock"
	"carrental/internal/pkg/errs"
	"carrental/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes -----------------------------------------------------------------

type fakeLedger struct {
	inserted     []*booking.Booking
	admit        bool
	insertErr    error
	byID         map[uuid.UUID]*booking.Booking
	findErr      error
	updateOK     bool
	updateErr    error
	updatedPrevs []booking.Status
}

func (f *fakeLedger) TryInsert(_ context.Context, b *booking.Booking) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	f.inserted = append(f.inserted, b)
	return f.admit, nil
}

func (f *fakeLedger) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, _ *booking.Booking, previous booking.Status) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	f.updatedPrevs = append(f.updatedPrevs, previous)
	return f.updateOK, nil
}

func (f *fakeLedger) SweepStatuses(_ context.Context, _ time.Time) (int64, int64, error) {
	return 0, 0, nil
}

type fakeCarTypes struct {
	types map[string]*cartype.CarType
}

func (f *fakeCarTypes) FindByID(_ context.Context, id string) (*cartype.CarType, error) {
	ct, ok := f.types[id]
	if !ok {
		return nil, infra.WrapRepoErr("car type not found", errs.New("no rows"), infra.KindNotFound)
	}
	return ct, nil
}

type fakeCallers struct {
	users map[string]*repository.UserRecord
}

func (f *fakeCallers) FindByEmail(_ context.Context, email string) (*repository.UserRecord, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", errs.New("no rows"), infra.KindNotFound)
	}
	return u, nil
}

func (f *fakeCallers) FindByID(_ context.Context, id uuid.UUID) (*repository.UserRecord, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", errs.New("no rows"), infra.KindNotFound)
}

type fakeStorage struct {
	stored []string
	key    string
	err    error
}

func (f *fakeStorage) Store(_ context.Context, _ []byte, filename, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.stored = append(f.stored, filename)
	return f.key, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	f.sent = append(f.sent, to)
	return f.err
}

// ---- fixtures --------------------------------------------------------------

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*fakeLedger, *fakeCarTypes, *fakeCallers, *fakeStorage, *fakeMailer, commands.BookingCommands) {
	t.Helper()
	sedan, err := cartype.NewCarType("SEDAN", "Sedan", "", 5000, "EUR", 3, "", nil)
	require.NoError(t, err)

	ledger := &fakeLedger{admit: true, updateOK: true, byID: map[uuid.UUID]*booking.Booking{}}
	carTypes := &fakeCarTypes{types: map[string]*cartype.CarType{"SEDAN": sedan}}
	verified := &repository.UserRecord{ID: uuid.New(), Email: "alice@example.com", EmailVerified: true}
	unverified := &repository.UserRecord{ID: uuid.New(), Email: "bob@example.com", EmailVerified: false}
	callers := &fakeCallers{users: map[string]*repository.UserRecord{
		verified.Email:   verified,
		unverified.Email: unverified,
	}}
	storage := &fakeStorage{key: "licenses/abc123"}
	mailer := &fakeMailer{}

	cmd := commands.NewBookingCommands(ledger, carTypes, callers, storage, mailer, clock.NewMockClock(testNow))
	return ledger, carTypes, callers, storage, mailer, cmd
}

func validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		TypeID:             "SEDAN",
		Start:              testNow.Add(24 * time.Hour),
		End:                testNow.Add(72 * time.Hour),
		PrincipalEmail:     "alice@example.com",
		License:            []byte("img"),
		LicenseFilename:    "license.jpg",
		LicenseContentType: "image/jpeg",
	}
}

func storedBooking(t *testing.T, ledger *fakeLedger, start, end time.Time) *booking.Booking {
	t.Helper()
	w, err := booking.NewWindow(start, end)
	require.NoError(t, err)
	b, err := booking.NewBooking(uuid.New(), "SEDAN", w, 5000, "licenses/abc123", testNow)
	require.NoError(t, err)
	ledger.byID[b.ID()] = b
	return b
}

// ---- Create ----------------------------------------------------------------

func TestBookingCommands_Create(t *testing.T) {
	t.Run("admits and returns a TO_CONFIRM view", func(t *testing.T) {
		ledger, _, _, storage, mailer, cmd := newFixture(t)

		view, err := cmd.Create(context.Background(), validInput())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusToConfirm.String(), view.Status)
		assert.Equal(t, 2, view.Days)
		assert.Equal(t, int64(10000), view.EstimatedTotalCents)
		assert.Equal(t, "licenses/abc123", view.LicenseImageKey)
		require.Len(t, ledger.inserted, 1)
		assert.Equal(t, []string{"license.jpg"}, storage.stored)
		assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
	})

	t.Run("invalid window never reaches storage or ledger", func(t *testing.T) {
		ledger, _, _, storage, _, cmd := newFixture(t)
		in := validInput()
		in.End = in.Start

		_, err := cmd.Create(context.Background(), in)

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrInvalidWindow), "want ErrInvalidWindow, got %v", err)
		assert.Empty(t, storage.stored)
		assert.Empty(t, ledger.inserted)
	})

	t.Run("unknown car type", func(t *testing.T) {
		_, _, _, _, _, cmd := newFixture(t)
		in := validInput()
		in.TypeID = "HOVERCRAFT"

		_, err := cmd.Create(context.Background(), in)

		assert.ErrorIs(t, err, commands.ErrCarTypeNotFound)
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, _, _, _, _, cmd := newFixture(t)
		in := validInput()
		in.PrincipalEmail = "nobody@example.com"

		_, err := cmd.Create(context.Background(), in)

		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("unverified caller is rejected before upload", func(t *testing.T) {
		_, _, _, storage, _, cmd := newFixture(t)
		in := validInput()
		in.PrincipalEmail = "bob@example.com"

		_, err := cmd.Create(context.Background(), in)

		assert.ErrorIs(t, err, commands.ErrUserNotVerified)
		assert.Empty(t, storage.stored)
	})

	t.Run("no capacity maps to ErrNoAvailability", func(t *testing.T) {
		ledger, _, _, _, mailer, cmd := newFixture(t)
		ledger.admit = false

		_, err := cmd.Create(context.Background(), validInput())

		assert.ErrorIs(t, err, commands.ErrNoAvailability)
		assert.Empty(t, mailer.sent)
	})

	t.Run("upload failure maps to ErrLicenseUploadFailed", func(t *testing.T) {
		ledger, _, _, storage, _, cmd := newFixture(t)
		storage.err = errs.New("cloud down")

		_, err := cmd.Create(context.Background(), validInput())

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrLicenseUploadFailed), "want ErrLicenseUploadFailed, got %v", err)
		assert.Empty(t, ledger.inserted)
	})

	t.Run("mail failure does not fail admission", func(t *testing.T) {
		_, _, _, _, mailer, cmd := newFixture(t)
		mailer.err = errs.New("smtp down")

		view, err := cmd.Create(context.Background(), validInput())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusToConfirm.String(), view.Status)
	})
}

// ---- transitions -----------------------------------------------------------

func TestBookingCommands_Confirm(t *testing.T) {
	t.Run("future window confirms to BOOKED", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))

		result, err := cmd.Confirm(context.Background(), b.ID(), "B-123-CD")

		require.NoError(t, err)
		assert.Equal(t, booking.StatusBooked, result.Status)
		assert.Equal(t, "B-123-CD", result.CarRegistrationNumber)
		assert.Equal(t, []booking.Status{booking.StatusToConfirm}, ledger.updatedPrevs)
	})

	t.Run("window already started confirms straight to OCCUPIED", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(-time.Hour), testNow.Add(48*time.Hour))

		result, err := cmd.Confirm(context.Background(), b.ID(), "B-123-CD")

		require.NoError(t, err)
		assert.Equal(t, booking.StatusOccupied, result.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, _, _, _, _, cmd := newFixture(t)

		_, err := cmd.Confirm(context.Background(), uuid.New(), "B-123-CD")

		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("already confirmed booking rejects a second confirm", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
		require.NoError(t, b.Confirm(testNow, "B-123-CD"))

		_, err := cmd.Confirm(context.Background(), b.ID(), "X-999-ZZ")

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})

	t.Run("losing the status race surfaces ErrInvalidState", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
		ledger.updateOK = false

		_, err := cmd.Confirm(context.Background(), b.ID(), "B-123-CD")

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})
}

func TestBookingCommands_Reject(t *testing.T) {
	t.Run("rejects a pending booking", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))

		status, err := cmd.Reject(context.Background(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected, status)
	})

	t.Run("cannot reject a confirmed booking", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
		require.NoError(t, b.Confirm(testNow, "B-123-CD"))

		_, err := cmd.Reject(context.Background(), b.ID())

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})
}

func TestBookingCommands_Cancel(t *testing.T) {
	t.Run("cancels a pending booking", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))

		status, err := cmd.Cancel(context.Background(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, status)
	})

	t.Run("cancels a confirmed booking", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
		require.NoError(t, b.Confirm(testNow, "B-123-CD"))

		status, err := cmd.Cancel(context.Background(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, status)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		ledger, _, _, _, _, cmd := newFixture(t)
		b := storedBooking(t, ledger, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
		require.NoError(t, b.Reject(testNow))

		_, err := cmd.Cancel(context.Background(), b.ID())

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})
}
