package engine

// System is a native-side subsystem that runs once per tick after the script updates.
type System interface {
	Execute(frame *Frame)
}
