package viewstate

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/message"
	"github.com/venky2135/pg-management-system/internal/model"
)

// FeeHistory shows one student's payments and their total.
type FeeHistory struct {
	studentID int64
	fees      FeeLedger
	dialog    Dialog
	log       zerolog.Logger

	mu           sync.RWMutex
	list         []model.Fee
	totalPaid    float64
	isLoading    bool
	errorMessage string
}

// FeeHistoryState is a copy of the history's state for rendering.
type FeeHistoryState struct {
	StudentID    int64
	Fees         []model.Fee
	TotalPaid    float64
	IsLoading    bool
	ErrorMessage string
}

func NewFeeHistory(studentID int64, fees FeeLedger, dialog Dialog, log zerolog.Logger) *FeeHistory {
	return &FeeHistory{
		studentID: studentID,
		fees:      fees,
		dialog:    dialog,
		log:       log.With().Str("component", "fee_history").Int64("student_id", studentID).Logger(),
		list:      []model.Fee{},
	}
}

// Snapshot returns a copy of the current state.
func (h *FeeHistory) Snapshot() FeeHistoryState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fees := make([]model.Fee, len(h.list))
	copy(fees, h.list)
	return FeeHistoryState{
		StudentID:    h.studentID,
		Fees:         fees,
		TotalPaid:    h.totalPaid,
		IsLoading:    h.isLoading,
		ErrorMessage: h.errorMessage,
	}
}

// Init performs the first load.
func (h *FeeHistory) Init(ctx context.Context) {
	h.Reload(ctx)
}

// Reload fetches the payment list and the total at the same time and
// returns once both have been applied.
func (h *FeeHistory) Reload(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.LoadFees(ctx)
	}()
	go func() {
		defer wg.Done()
		h.LoadTotalPaid(ctx)
	}()
	wg.Wait()
}

// LoadFees replaces the list with the server's, newest payment first.
func (h *FeeHistory) LoadFees(ctx context.Context) {
	h.mu.Lock()
	h.isLoading = true
	h.errorMessage = ""
	h.mu.Unlock()

	fees, err := h.fees.ListByStudent(ctx, h.studentID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.isLoading = false
	if err != nil {
		h.errorMessage = apierror.Normalize(err)
		h.log.Warn().Err(err).Msg("Load fees failed")
		return
	}
	SortFeesByDateDesc(fees)
	h.list = fees
}

// LoadTotalPaid refreshes the total. Failures are logged and the previous
// total is kept.
func (h *FeeHistory) LoadTotalPaid(ctx context.Context) {
	total, err := h.fees.TotalPaidByStudent(ctx, h.studentID)
	if err != nil {
		h.log.Error().Err(err).Msg("Load total paid failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.totalPaid = total.TotalPaid
}

// DeleteFee removes fee after the user confirms, then reloads the list and
// total. Outcomes are reported through the dialog.
func (h *FeeHistory) DeleteFee(ctx context.Context, fee model.Fee) {
	if !h.dialog.Confirm(message.Text(message.FeeDeleteConfirm)) {
		return
	}

	if err := h.fees.Delete(ctx, fee.ID); err != nil {
		h.log.Warn().Err(err).Int64("fee_id", fee.ID).Msg("Delete fee failed")
		h.dialog.Notify(message.Format(message.FeeDeleteFailed, apierror.Normalize(err)))
		return
	}

	h.dialog.Notify(message.Text(message.FeeDeleted))
	h.Reload(ctx)
}

// SortFeesByDateDesc orders fees newest first in place. Fees on the same
// date keep their relative order; unparseable dates sort last.
func SortFeesByDateDesc(fees []model.Fee) {
	sort.SliceStable(fees, func(i, j int) bool {
		return paymentTime(fees[i]).After(paymentTime(fees[j]))
	})
}

func paymentTime(f model.Fee) time.Time {
	t, err := time.Parse(model.DateLayout, f.PaymentDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
