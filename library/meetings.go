package library

import "context"

const insertMeeting = `INSERT INTO reunion (id_club, fecha_reunion, tema, descripcion, lugar)
	VALUES (?, ?, ?, ?, ?)`

// CreateMeeting schedules a meeting and returns its id.
func (d *Database) CreateMeeting(ctx context.Context, m NewMeeting) (int64, error) {
	return d.exec.Exec(ctx, insertMeeting, m.ClubID, m.Date, m.Topic, m.Description, m.Place)
}

// ReadMeetings returns all meetings, or those matching f.
func (d *Database) ReadMeetings(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, meetingsTable, f)
}
