package models

// Student defines the student model based on the 'students' table.
// Records are created by the institutional roster import; this service
// only ever sets Email (on link confirmation) and PasswordHash (on
// signup completion), in that order.
type Student struct {
	EnrollmentNumber string   `json:"enrollmentNumber" db:"enrollment_number"` // Institution-assigned 9-character identifier, primary key
	Email            *string  `json:"email,omitempty" db:"email"`              // Verified email identity (nullable until link confirmation)
	PasswordHash     *string  `json:"-" db:"password"`                         // Salted credential digest (nullable until signup completes)
	FirstName        string   `json:"firstName" db:"first_name"`
	LastName         string   `json:"lastName" db:"last_name"`
	ClubCredits      string   `json:"clubCredits" db:"club_credits"` // Ledger value, not mutated here
	InClubAsTeam     []string `json:"inClubAsTeam" db:"in_club_as_team"`
	InClubAsMember   []string `json:"inClubAsMember" db:"in_club_as_member"`
}

// IsEmailVerified reports whether the email identity has been set
func (s *Student) IsEmailVerified() bool {
	return s.Email != nil && *s.Email != ""
}

// IsRegistered reports whether a credential has been set
func (s *Student) IsRegistered() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}
