package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User types stored in the users collection.
const (
	UserTypeIndividual = "individual"
	UserTypeEnterprise = "enterprise"
	UserTypeAdmin      = "admin"
)

// ValidUserType reports whether the value is one of the known account types.
func ValidUserType(t string) bool {
	switch t {
	case UserTypeIndividual, UserTypeEnterprise, UserTypeAdmin:
		return true
	}
	return false
}

// User is a platform account. Exactly one record exists per email; the users
// collection carries a unique index on the email field to enforce it.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	FirstName    string        `bson:"firstName"`
	LastName     string        `bson:"lastName"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	UserType     string        `bson:"userType"`
	Phone        string        `bson:"phone,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// Enterprise extends a User record with company metadata when the account
// type is enterprise. Created best-effort alongside the User record.
type Enterprise struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	UserID        bson.ObjectID `bson:"user_id"`
	CompanyName   string        `bson:"companyName"`
	ContactPerson string        `bson:"contactPerson"`
	JobTitle      string        `bson:"jobTitle,omitempty"`
	Industry      string        `bson:"industry"`
	CompanySize   string        `bson:"companySize"`
	Address       string        `bson:"address"`
	Website       string        `bson:"website,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
}

// Profile is the resume document built through the profile wizard. The seed
// written at account creation carries only identity fields; wizard steps merge
// their sections in afterwards with partial updates, so most fields are
// optional.
type Profile struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    bson.ObjectID `bson:"user_id,omitempty" json:"-"`
	Email     string        `bson:"email" json:"email"`
	FirstName string        `bson:"first_name" json:"first_name"`
	LastName  string        `bson:"last_name" json:"last_name"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string        `bson:"location,omitempty" json:"location,omitempty"`
	DOB       string        `bson:"dob,omitempty" json:"dob,omitempty"`
	Summary   string        `bson:"description,omitempty" json:"description,omitempty"`

	University     string `bson:"university,omitempty" json:"university,omitempty"`
	DegreeLevel    string `bson:"degree_level,omitempty" json:"degree_level,omitempty"`
	Major          string `bson:"major,omitempty" json:"major,omitempty"`
	GraduationYear string `bson:"graduation_year,omitempty" json:"graduation_year,omitempty"`
	CGPA           string `bson:"cgpa,omitempty" json:"cgpa,omitempty"`
	AdditionalInfo string `bson:"additional_info,omitempty" json:"additional_info,omitempty"`

	WorkExperience string `bson:"work_experience,omitempty" json:"work_experience,omitempty"`
	JobTitle       string `bson:"job_title,omitempty" json:"job_title,omitempty"`
	Company        string `bson:"company,omitempty" json:"company,omitempty"`
	WorkLocation   string `bson:"work_location,omitempty" json:"work_location,omitempty"`
	WorkStartDate  string `bson:"start_date,omitempty" json:"start_date,omitempty"`
	WorkEndDate    string `bson:"end_date,omitempty" json:"end_date,omitempty"`
	WorkSummary    string `bson:"work_description,omitempty" json:"work_description,omitempty"`

	ProjectTitle   string `bson:"project_title,omitempty" json:"project_title,omitempty"`
	ProjectURL     string `bson:"project_url,omitempty" json:"project_url,omitempty"`
	ProjectSummary string `bson:"project_description,omitempty" json:"project_description,omitempty"`

	TechnicalSkills string `bson:"technical_skills,omitempty" json:"technical_skills,omitempty"`
	SoftSkills      string `bson:"soft_skills,omitempty" json:"soft_skills,omitempty"`
	Language        string `bson:"language,omitempty" json:"language,omitempty"`
	Proficiency     string `bson:"proficiency,omitempty" json:"proficiency,omitempty"`

	JobTypes            string `bson:"job_types,omitempty" json:"job_types,omitempty"`
	SalaryExpectations  string `bson:"salary_expectations,omitempty" json:"salary_expectations,omitempty"`
	LocationPreferences string `bson:"location_preferences,omitempty" json:"location_preferences,omitempty"`
	WorkEnvironment     string `bson:"work_environment,omitempty" json:"work_environment,omitempty"`
	IndustryPreferences string `bson:"industry_preferences,omitempty" json:"industry_preferences,omitempty"`
	CompanySize         string `bson:"company_size,omitempty" json:"company_size,omitempty"`
	CareerGoals         string `bson:"career_goals,omitempty" json:"career_goals,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
