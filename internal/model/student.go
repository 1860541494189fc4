package model

// Student represents a PG resident.
// ID is assigned by the server; zero means the record is a draft that has
// never been created.
type Student struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name" validate:"required,min=2"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required,len=10,number"`
	RoomNo string `json:"roomNo" validate:"required"`
}

// IsPersisted reports whether the student has been created on the server.
func (s Student) IsPersisted() bool {
	return s.ID != 0
}
