package model

// Container identifies the container whose stats are streamed
type Container struct {
	ID      string
	Name    string
	Image   string
	State   string
	Running bool
}
