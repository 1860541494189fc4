package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/message"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/validator"
)

// FeeForm records a payment for one student.
type FeeForm struct {
	studentID int64
	fees      FeeCreator
	dialog    Dialog
	log       zerolog.Logger
	now       func() time.Time
	onSaved   func(ctx context.Context)

	mu           sync.RWMutex
	draft        model.Fee
	isLoading    bool
	errorMessage string
}

// FeeFormState is a copy of the form's state for rendering.
type FeeFormState struct {
	Draft        model.Fee
	IsLoading    bool
	ErrorMessage string
}

// FeeFormOption customises a FeeForm.
type FeeFormOption func(*FeeForm)

// WithClock replaces time.Now as the source of the default payment date.
func WithClock(now func() time.Time) FeeFormOption {
	return func(f *FeeForm) {
		f.now = now
	}
}

// NewFeeForm creates a form whose draft is bound to studentID. onSaved runs
// after each recorded payment and may be nil.
func NewFeeForm(
	studentID int64,
	fees FeeCreator,
	dialog Dialog,
	log zerolog.Logger,
	onSaved func(ctx context.Context),
	opts ...FeeFormOption,
) *FeeForm {
	f := &FeeForm{
		studentID: studentID,
		fees:      fees,
		dialog:    dialog,
		log:       log.With().Str("component", "fee_form").Int64("student_id", studentID).Logger(),
		now:       time.Now,
		onSaved:   onSaved,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.draft = f.newDraft()
	return f
}

func (f *FeeForm) newDraft() model.Fee {
	return model.Fee{
		StudentID:   f.studentID,
		Amount:      0,
		PaymentDate: f.now().Format(model.DateLayout),
		Mode:        model.PaymentModeCash,
	}
}

// Snapshot returns a copy of the current state.
func (f *FeeForm) Snapshot() FeeFormState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FeeFormState{
		Draft:        f.draft,
		IsLoading:    f.isLoading,
		ErrorMessage: f.errorMessage,
	}
}

func (f *FeeForm) SetAmount(amount float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Amount = amount
}

func (f *FeeForm) SetPaymentDate(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.PaymentDate = date
}

func (f *FeeForm) SetMode(mode model.PaymentMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Mode = mode
}

// validateFee checks amount, then date, then mode, and returns the message
// of the first rule that fails.
func validateFee(d model.Fee) (message.Code, bool) {
	if validator.Var(d.Amount, "gt=0") != nil {
		return message.FeeAmountInvalid, false
	}
	if validator.Var(d.PaymentDate, "required") != nil {
		return message.FeeDateRequired, false
	}
	if validator.Var(string(d.Mode), "required,payment_mode") != nil {
		return message.FeeModeRequired, false
	}
	return "", true
}

// Save validates the draft and records it. It reports whether the payment
// was recorded; on success the draft is reset for the same student.
func (f *FeeForm) Save(ctx context.Context) bool {
	f.mu.Lock()
	draft := f.draft
	if code, ok := validateFee(draft); !ok {
		f.errorMessage = message.Text(code)
		f.mu.Unlock()
		return false
	}
	f.isLoading = true
	f.errorMessage = ""
	f.mu.Unlock()

	_, err := f.fees.Create(ctx, draft)

	f.mu.Lock()
	f.isLoading = false
	if err != nil {
		f.errorMessage = apierror.Normalize(err)
		f.mu.Unlock()
		f.log.Warn().Err(err).Msg("Record fee failed")
		return false
	}
	f.draft = f.newDraft()
	f.errorMessage = ""
	f.mu.Unlock()

	f.dialog.Notify(message.Text(message.FeeRecorded))
	if f.onSaved != nil {
		f.onSaved(ctx)
	}
	return true
}
