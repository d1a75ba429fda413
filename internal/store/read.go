package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/logfile"
)

// RecordingInfo describes one archived session.
type RecordingInfo struct {
	ID         string
	CreatedAt  string
	LogVersion int
	Note       string
	Events     int
}

// ListRecordings returns all sessions, newest first.
func (s *Store) ListRecordings(ctx context.Context) ([]RecordingInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.log_version, r.note, COUNT(e.seq)
		FROM recordings r
		LEFT JOIN events e ON e.recording_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var infos []RecordingInfo
	for rows.Next() {
		var info RecordingInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.LogVersion, &info.Note, &info.Events); err != nil {
			return nil, fmt.Errorf("list recordings: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// LoadRecording rebuilds the parsed log of an archived session. Event
// order is restored through ORDER BY seq ASC, matching capture order
// exactly.
func (s *Store) LoadRecording(ctx context.Context, id string) (*logfile.Log, error) {
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT log_version FROM recordings WHERE id = ?`, id,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recording %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load recording: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT section, type, time_us, data, has_data, port, irq
		FROM events
		WHERE recording_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load recording: %w", err)
	}
	defer rows.Close()

	l := &logfile.Log{Version: version}
	for rows.Next() {
		var (
			section string
			typ     int
			data    int
			e       event.Event
		)
		if err := rows.Scan(&section, &typ, &e.Time, &data, &e.HasData, &e.Port, &e.IRQ); err != nil {
			return nil, fmt.Errorf("load recording: %w", err)
		}
		e.Type = event.Type(typ)
		e.Data = byte(data)

		switch section {
		case sectionInit:
			l.Init = append(l.Init, e)
		case sectionMain:
			l.Main = append(l.Main, e)
		default:
			l.Events = append(l.Events, e)
		}
	}

	return l, rows.Err()
}
