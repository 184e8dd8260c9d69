package ecs

// UpdateFrame is passed to every system run. Commands queued on it are applied
// when the stage that owns the run flushes.
type UpdateFrame struct {
	DeltaTime float64
	Frame     int64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, frame int64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  NewCommands(storage),
		Storage:   storage,
	}
}
