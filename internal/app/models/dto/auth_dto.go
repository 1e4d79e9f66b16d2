package dto

import "github.com/voltclub/clubsphere/internal/app/models"

// Probe result states for an enrollment number
const (
	ProbeStateLogin  = "LOGIN"
	ProbeStateSignup = "SIGNUP"
)

// EnrollmentProbeRequest asks whether an enrollment number needs signup
type EnrollmentProbeRequest struct {
	EnrollmentNumber string `json:"enrollmentNumber"`
}

// EnrollmentProbeResponse tells the client which flow to enter
type EnrollmentProbeResponse struct {
	State string `json:"state" example:"SIGNUP"`
	Email string `json:"email,omitempty"`
}

// SendVerificationLinkRequest asks for a verification email
type SendVerificationLinkRequest struct {
	EnrollmentNumber string `json:"enrollmentNumber"`
	Email            string `json:"email"`
}

// SignupRequest completes registration with a chosen password
type SignupRequest struct {
	EnrollmentNumber string `json:"enrollmentNumber"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents session token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// StudentProfile is the public view of a student record
type StudentProfile struct {
	EnrollmentNumber string   `json:"enrollmentNumber"`
	Email            string   `json:"email"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	ClubCredits      string   `json:"clubCredits"`
	InClubAsTeam     []string `json:"inClubAsTeam"`
	InClubAsMember   []string `json:"inClubAsMember"`
}

// AuthResponse is returned on successful signup or login
type AuthResponse struct {
	Message string         `json:"message"`
	Token   TokenResponse  `json:"token"`
	Student StudentProfile `json:"student"`
}

// NewStudentProfile maps a student record to its public profile
func NewStudentProfile(student *models.Student) StudentProfile {
	profile := StudentProfile{
		EnrollmentNumber: student.EnrollmentNumber,
		FirstName:        student.FirstName,
		LastName:         student.LastName,
		ClubCredits:      student.ClubCredits,
		InClubAsTeam:     student.InClubAsTeam,
		InClubAsMember:   student.InClubAsMember,
	}
	if student.Email != nil {
		profile.Email = *student.Email
	}
	return profile
}
