// Package reconcile decides, on each display load, whether persisted time
// settings stay or are re-derived from the event catalog, and owns the one
// path that commits manual settings.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// Store is the durable settings state the engine reconciles.
type Store interface {
	Settings(ctx context.Context) (*models.TimeSettings, error)
	SaveSettings(ctx context.Context, settings models.TimeSettings) error
	Provenance(ctx context.Context) (*models.SettingProvenance, error)
	SaveProvenance(ctx context.Context, p models.SettingProvenance) error
	ClearAll(ctx context.Context) error
	SaveTitle(ctx context.Context, title string) error
}

// Catalog supplies the auto-selection candidate.
type Catalog interface {
	Candidate(ctx context.Context, today time.Time) (*models.EventRecord, error)
}

// Notifier receives typed notifications when the engine changes state.
type Notifier interface {
	SettingsApplied(settings models.TimeSettings, source string)
	SettingsCleared()
	TitleChanged(title string)
}

// Outcome describes what a reconciliation or commit pass did.
type Outcome string

const (
	OutcomeKept           Outcome = "kept"
	OutcomeLoaded         Outcome = "loaded"
	OutcomeCommitted      Outcome = "committed"
	OutcomeSuppressed     Outcome = "suppressed"
	OutcomeDeclined       Outcome = "declined"
	OutcomeNoCandidate    Outcome = "no_candidate"
	OutcomeAnswerRequired Outcome = "answer_required"
)

// Result is the outcome of a reconciliation or commit pass.
type Result struct {
	Outcome  Outcome              `json:"outcome"`
	Prompt   *Prompt              `json:"prompt,omitempty"`
	Event    *models.EventRecord  `json:"event,omitempty"`
	Settings *models.TimeSettings `json:"settings,omitempty"`
	Warning  string               `json:"warning,omitempty"`
}

// nearFutureDays is how far out a candidate event may be before auto-load
// stops protecting existing settings from being overwritten.
const nearFutureDays = 3

// Engine runs the settings reconciliation state machine.
type Engine struct {
	store    Store
	catalog  Catalog
	notifier Notifier
	now      func() time.Time
}

// NewEngine creates a reconciliation engine. now may be nil, defaulting to
// time.Now.
func NewEngine(store Store, catalog Catalog, notifier Notifier, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		now:      now,
	}
}

// Reconcile runs the once-per-load procedure: decide whether the persisted
// settings survive, are cleared in favor of a catalog load, or stay pending
// a confirmation the caller has not answered yet.
func (e *Engine) Reconcile(ctx context.Context, confirmer Confirmer) (*Result, error) {
	today := timeutil.DateOf(e.now())
	todayStr := timeutil.DateString(today)

	prov, err := e.store.Provenance(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading provenance: %w", err)
	}
	settings, err := e.store.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	// Manual settings from a previous day: the date has rolled over.
	if prov.IsManual() && prov.SetDate != todayStr {
		ok, pending, err := e.confirm(ctx, confirmer, dateRolloverPrompt(prov.SetDate, todayStr))
		if pending != nil || err != nil {
			return pending, err
		}
		if !ok {
			// The stale SetDate is kept on purpose: the same prompt
			// recurs on the next load until the user accepts or resets.
			log.Printf("Keeping manual settings from %s", prov.SetDate)
			return &Result{Outcome: OutcomeKept, Settings: settings}, nil
		}
		if err := e.clear(ctx); err != nil {
			return nil, err
		}
		return e.loadFromCatalog(ctx, confirmer, today, nil)
	}

	// The configured event is now in the past.
	if settings != nil && timeutil.DateOf(settings.StartTime).Before(today) {
		ok, pending, err := e.confirm(ctx, confirmer, pastSettingsPrompt(settings.StartTime))
		if pending != nil || err != nil {
			return pending, err
		}
		if !ok {
			return &Result{Outcome: OutcomeKept, Settings: settings}, nil
		}
		if err := e.clear(ctx); err != nil {
			return nil, err
		}
		return e.loadFromCatalog(ctx, confirmer, today, nil)
	}

	// Manual settings made today win without consulting the catalog.
	if prov.IsManual() && prov.SetDate == todayStr {
		return &Result{Outcome: OutcomeKept, Settings: settings}, nil
	}

	return e.loadFromCatalog(ctx, confirmer, today, settings)
}

// loadFromCatalog applies the catalog candidate, subject to near-future
// suppression and the past-event gate. Catalog loads never write provenance:
// the data stays auto-sourced even when a confirmation preceded the load.
func (e *Engine) loadFromCatalog(ctx context.Context, confirmer Confirmer, today time.Time, existing *models.TimeSettings) (*Result, error) {
	rec, err := e.catalog.Candidate(ctx, today)
	if err != nil {
		log.Printf("Catalog load failed: %v", err)
		return &Result{Outcome: OutcomeNoCandidate}, nil
	}
	if rec == nil {
		log.Println("No current or future event in the catalog")
		return &Result{Outcome: OutcomeNoCandidate}, nil
	}

	days := timeutil.DaysBetween(today, rec.Date)
	if existing != nil && days > 0 && days <= nearFutureDays {
		log.Printf("Event %d day(s) out; keeping existing settings", days)
		return &Result{Outcome: OutcomeSuppressed, Event: rec, Settings: existing}, nil
	}

	if timeutil.DateOf(rec.Date).Before(today) {
		ok, pending, err := e.confirm(ctx, confirmer, pastCandidatePrompt(rec.Date))
		if pending != nil || err != nil {
			return pending, err
		}
		if !ok {
			return &Result{Outcome: OutcomeDeclined, Event: rec}, nil
		}
	}

	settings, err := rec.Window()
	if err != nil {
		return nil, fmt.Errorf("deriving settings from event: %w", err)
	}

	if err := e.store.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("persisting settings: %w", err)
	}
	e.applyTitle(ctx, rec)

	e.notifier.SettingsApplied(settings, models.SourceAuto)
	log.Printf("Loaded event: %s (%s)", rec.Venue, timeutil.DateString(rec.Date))

	return &Result{Outcome: OutcomeLoaded, Event: rec, Settings: &settings}, nil
}

// CommitRequest carries a user-supplied or user-confirmed set of clock-times.
type CommitRequest struct {
	Open  *timeutil.Clock
	Start timeutil.Clock
	End   timeutil.Clock

	// Anchor is the date of a just-selected catalog row, when one is
	// pending. Nil anchors to today.
	Anchor *time.Time
}

// CommitManual is the single path that writes manual provenance. The
// start/end rollover rule applies; a same-or-later open time produces a
// non-blocking warning, never a rejection.
func (e *Engine) CommitManual(ctx context.Context, req CommitRequest) (*Result, error) {
	anchor := timeutil.DateOf(e.now())
	if req.Anchor != nil {
		anchor = timeutil.DateOf(*req.Anchor)
	}

	settings := models.BuildTimeSettings(anchor, req.Open, req.Start, req.End)

	var warning string
	if settings.OpenTime != nil && !settings.OpenTime.Before(settings.StartTime) {
		warning = "開場時間が開演時間より後になっています"
	}

	if err := e.store.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("persisting settings: %w", err)
	}
	prov := models.SettingProvenance{
		Source:  models.SourceManual,
		SetDate: timeutil.DateString(anchor),
	}
	if err := e.store.SaveProvenance(ctx, prov); err != nil {
		return nil, fmt.Errorf("persisting provenance: %w", err)
	}

	e.notifier.SettingsApplied(settings, models.SourceManual)

	return &Result{Outcome: OutcomeCommitted, Settings: &settings, Warning: warning}, nil
}

// ApplyRecord commits a catalog row the user picked: a manual-provenance
// commit anchored to the row's date, gated on confirmation when the row is
// in the past.
func (e *Engine) ApplyRecord(ctx context.Context, confirmer Confirmer, rec *models.EventRecord) (*Result, error) {
	if !rec.Complete {
		return nil, fmt.Errorf("event %s is missing clock times", rec.ID)
	}

	today := timeutil.DateOf(e.now())
	if timeutil.DateOf(rec.Date).Before(today) {
		ok, pending, err := e.confirm(ctx, confirmer, pastCandidatePrompt(rec.Date))
		if pending != nil || err != nil {
			return pending, err
		}
		if !ok {
			return &Result{Outcome: OutcomeDeclined, Event: rec}, nil
		}
	}

	open, err := timeutil.ParseClock(rec.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("parsing open time: %w", err)
	}
	start, err := timeutil.ParseClock(rec.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := timeutil.ParseClock(rec.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}

	anchor := timeutil.DateOf(rec.Date)
	result, err := e.CommitManual(ctx, CommitRequest{
		Open:   &open,
		Start:  start,
		End:    end,
		Anchor: &anchor,
	})
	if err != nil {
		return nil, err
	}

	e.applyTitle(ctx, rec)
	result.Event = rec

	return result, nil
}

// Reset clears settings and provenance together.
func (e *Engine) Reset(ctx context.Context) error {
	return e.clear(ctx)
}

func (e *Engine) clear(ctx context.Context) error {
	if err := e.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	e.notifier.SettingsCleared()
	return nil
}

func (e *Engine) applyTitle(ctx context.Context, rec *models.EventRecord) {
	title := rec.DisplayTitle()
	if err := e.store.SaveTitle(ctx, title); err != nil {
		log.Printf("Failed to persist display title: %v", err)
		return
	}
	e.notifier.TitleChanged(title)
}

// confirm asks the confirmer and maps an unanswered prompt to an
// answer-required result.
func (e *Engine) confirm(ctx context.Context, confirmer Confirmer, p Prompt) (bool, *Result, error) {
	ok, err := confirmer.Confirm(ctx, p)
	var need *AnswerRequiredError
	if errors.As(err, &need) {
		return false, &Result{Outcome: OutcomeAnswerRequired, Prompt: &need.Prompt}, nil
	}
	if err != nil {
		return false, nil, err
	}
	return ok, nil, nil
}
