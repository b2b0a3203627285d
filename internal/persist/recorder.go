package persist

import (
	"context"

	"github.com/badnight/game/internal/core/event"
	"go.uber.org/zap"
)

// NightWriter stores batches of run log rows.
type NightWriter interface {
	Record(ctx context.Context, nights []NightRecord, purchases []PurchaseRecord) error
}

// Recorder turns session notifications into run log rows. Handlers only
// buffer; Flush does the I/O so the game loop decides when to pay for it.
// A night row is complete once its day-start settlement arrived.
type Recorder struct {
	w     NightWriter
	runID int64
	log   *zap.Logger

	day       uint
	open      *NightRecord
	nights    []NightRecord
	purchases []PurchaseRecord
}

func NewRecorder(w NightWriter, runID int64, log *zap.Logger) *Recorder {
	return &Recorder{w: w, runID: runID, log: log}
}

// Attach subscribes the recorder to the session bus.
func (r *Recorder) Attach(bus *event.Bus) {
	event.Subscribe(bus, r.onPhaseChanged)
	event.Subscribe(bus, r.onNightEnded)
	event.Subscribe(bus, r.onDaySettled)
	event.Subscribe(bus, r.onUpgradePurchased)
}

func (r *Recorder) onPhaseChanged(ev event.PhaseChanged) { r.day = ev.Day }

func (r *Recorder) onNightEnded(ev event.NightEnded) {
	if r.open != nil {
		// settlement never came (run aborted mid-day); keep what we have
		r.nights = append(r.nights, *r.open)
	}
	r.open = &NightRecord{
		RunID:      r.runID,
		Day:        ev.Day,
		Elapsed:    ev.Elapsed,
		Kills:      ev.Kills,
		Contacts:   ev.Contacts,
		Died:       ev.Died,
		UnsafeRest: ev.UnsafeRest,
	}
}

func (r *Recorder) onDaySettled(ev event.DaySettled) {
	r.day = ev.Day
	if r.open == nil {
		return
	}
	rec := *r.open
	rec.Banked = ev.Banked
	rec.BalanceAfter = ev.RestBalance
	r.nights = append(r.nights, rec)
	r.open = nil
}

func (r *Recorder) onUpgradePurchased(ev event.UpgradePurchased) {
	r.purchases = append(r.purchases, PurchaseRecord{
		RunID:       r.runID,
		Day:         r.day,
		Upgrade:     ev.Name,
		Cost:        ev.Cost,
		BalanceLeft: ev.BalanceLeft,
	})
}

// Pending returns the number of buffered rows.
func (r *Recorder) Pending() int { return len(r.nights) + len(r.purchases) }

// Flush writes buffered rows. On failure the rows stay buffered for the next
// attempt.
func (r *Recorder) Flush(ctx context.Context) error {
	if r.Pending() == 0 {
		return nil
	}
	if err := r.w.Record(ctx, r.nights, r.purchases); err != nil {
		r.log.Warn("run log flush failed",
			zap.Int("nights", len(r.nights)),
			zap.Int("purchases", len(r.purchases)),
			zap.Error(err))
		return err
	}
	r.log.Debug("run log flushed",
		zap.Int64("run", r.runID),
		zap.Int("nights", len(r.nights)),
		zap.Int("purchases", len(r.purchases)))
	r.nights = r.nights[:0]
	r.purchases = r.purchases[:0]
	return nil
}

// Close moves an unsettled night into the buffer and flushes.
func (r *Recorder) Close(ctx context.Context) error {
	if r.open != nil {
		r.nights = append(r.nights, *r.open)
		r.open = nil
	}
	return r.Flush(ctx)
}
