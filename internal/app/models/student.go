package models

// Student is the read-only projection of the student directory that the
// billing core consumes. The wider student record (guardians, photos,
// enrollment history) lives outside this service.
type Student struct {
	ID      int64  `json:"id"`
	ClassID int64  `json:"classId"`
	Name    string `json:"name"`
}
