package roster

// Patient maps to the patient table.
type Patient struct {
	ID        string  `db:"patient_id" json:"patient_id"`
	Name      string  `db:"patient_name" json:"patient_name"`
	Password  string  `db:"password" json:"-"`
	Email     *string `db:"email" json:"email,omitempty"`
	ContactNo *string `db:"contact_no" json:"contact_no,omitempty"`
}

// Doctor maps to the doctor table. Doctors sign in by name.
type Doctor struct {
	ID             string `db:"doctor_id" json:"doctor_id"`
	Name           string `db:"doctor_name" json:"doctor_name"`
	DepartmentID   int    `db:"department_id" json:"department_id"`
	Specialization string `db:"specialization" json:"specialization"`
}

// Department maps to the department table. DoctorsRegistered counts every
// doctor ever added to the department; removing a doctor leaves it as is.
type Department struct {
	ID                int    `db:"department_id" json:"department_id"`
	Name              string `db:"department_name" json:"department_name"`
	Description       string `db:"department_description" json:"department_description"`
	DoctorsRegistered int    `db:"doctors_registered" json:"doctors_registered"`
}

// ProfileUpdate is the self-service edit a patient makes from the
// dashboard.
type ProfileUpdate struct {
	Name      string
	Email     string
	ContactNo string
	Password  string
}
