package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"courtside/internal/domain/editor"
	"courtside/internal/domain/schedule"
)

// ScheduleStoreForSave defines the store interface needed by SaveSchedule.
type ScheduleStoreForSave interface {
	ApplySave(ctx context.Context, season string, req editor.SaveRequest) error
}

// EmailSenderForSave sends the optional save notification.
type EmailSenderForSave interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SaveScheduleInput carries input for the save orchestrator.
type SaveScheduleInput struct {
	State editor.State
}

// SaveScheduleResult carries the outcome of a save attempt. When the
// validation report is not OK nothing was persisted and State is the
// input state unchanged.
type SaveScheduleResult struct {
	Saved  bool
	Report schedule.ValidationReport
	State  editor.State
}

// SaveScheduleDeps holds dependencies for SaveSchedule.
type SaveScheduleDeps struct {
	ScheduleStore ScheduleStoreForSave
	Sender        EmailSenderForSave // optional: nil skips notification
	NotifyEmail   string
}

// ExecuteSaveSchedule validates the whole schedule, persists the changed
// subset in one transaction and resets the session's change tracking.
// A failed validation blocks the entire save; there are no partial writes.
// PRE: input.State came from Hydrate and zero or more edit operations
// POST: on success the returned state has empty change tracking
func ExecuteSaveSchedule(ctx context.Context, input SaveScheduleInput, deps SaveScheduleDeps) (SaveScheduleResult, error) {
	st := input.State

	report := schedule.ValidateForSave(st.Weeks)
	if !report.OK() {
		slog.Info("save_blocked", "season", st.Season, "issues", len(report.Issues))
		return SaveScheduleResult{Saved: false, Report: report, State: st}, nil
	}

	req := st.BuildSaveRequest()
	if req.Empty() {
		return SaveScheduleResult{Saved: true, State: resetKeepingLocks(st)}, nil
	}

	if err := deps.ScheduleStore.ApplySave(ctx, st.Season, req); err != nil {
		return SaveScheduleResult{}, fmt.Errorf("failed to apply save: %w", err)
	}

	slog.Info("schedule_saved",
		"season", st.Season,
		"games", len(req.Games),
		"deleted_games", len(req.DeleteGameIDs),
		"weeks", len(req.WeekDates),
		"deleted_weeks", len(req.DeleteWeekIDs),
	)

	// Notification failures never fail the save.
	if deps.Sender != nil && deps.NotifyEmail != "" {
		subject := fmt.Sprintf("Schedule updated: %s", st.Season)
		body := fmt.Sprintf("<p>The %s schedule was saved: %d game(s) and %d week(s) updated.</p>",
			st.Season, len(req.Games), len(req.WeekDates))
		if err := deps.Sender.Send(ctx, deps.NotifyEmail, subject, body); err != nil {
			slog.Warn("save_notification_failed", "error", err)
		}
	}

	return SaveScheduleResult{Saved: true, State: resetKeepingLocks(st)}, nil
}

// resetKeepingLocks clears change tracking but leaves the lock set alone:
// saving scores never reopens or closes a week mid-session.
func resetKeepingLocks(st editor.State) editor.State {
	locked := st.LockedWeeks
	out := st.ResetChangeTracking()
	out.LockedWeeks = locked
	return out
}
