package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/logfile"
)

// Section values as stored in event rows. Version-0 flat lists store
// the empty section.
const (
	sectionFlat = ""
	sectionInit = logfile.SectionInit
	sectionMain = logfile.SectionMain
)

// SaveRecording archives a parsed log under a fresh session ID. All
// rows land in one transaction; a failed save leaves nothing behind.
func (s *Store) SaveRecording(ctx context.Context, l *logfile.Log, note string) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save recording: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recordings (id, created_at, log_version, note)
		VALUES (?, ?, ?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339), l.Version, note)
	if err != nil {
		return "", fmt.Errorf("save recording: %w", err)
	}

	seq := 0
	insert := func(section string, events []event.Event) error {
		for _, e := range events {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO events
				(recording_id, seq, section, type, time_us, data, has_data, port, irq)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, seq, section, int(e.Type), e.Time, int(e.Data), e.HasData, e.Port, e.IRQ)
			if err != nil {
				return fmt.Errorf("save event %d: %w", seq, err)
			}
			seq++
		}
		return nil
	}

	if err := insert(sectionFlat, l.Events); err != nil {
		return "", err
	}
	if err := insert(sectionInit, l.Init); err != nil {
		return "", err
	}
	if err := insert(sectionMain, l.Main); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save recording: %w", err)
	}

	return id, nil
}

// DeleteRecording removes a session and its events.
func (s *Store) DeleteRecording(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recording %s not found", id)
	}

	return nil
}
