package roster

// Kind is the explicit discriminant of the Person union. Branch on it, not
// on which fields happen to be set.
type Kind string

const (
	KindStudent  Kind = "student"
	KindTeacher  Kind = "teacher"
	KindGuardian Kind = "guardian"
)

// Person is the tagged variant covering the three user shapes the school
// system carries.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// student fields
	Grade   string `json:"grade,omitempty"`
	Group   string `json:"group,omitempty"`
	Jornada string `json:"jornada,omitempty"` // morning/afternoon shift

	// teacher fields
	Subject string `json:"subject,omitempty"`

	// guardian fields
	WardIDs []string `json:"ward_ids,omitempty"`
}

// Student is the narrow projection the reporting engine consumes; it never
// sees the full Person variant.
type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Grade   string `json:"grade"`
	Group   string `json:"group"`
	Jornada string `json:"jornada,omitempty"`
}

// AsStudent projects a Person onto the reporting shape. The second return
// is false for non-student kinds.
func (p Person) AsStudent() (Student, bool) {
	if p.Kind != KindStudent {
		return Student{}, false
	}
	return Student{ID: p.ID, Name: p.Name, Grade: p.Grade, Group: p.Group, Jornada: p.Jornada}, true
}
