package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PersonalInfo carries the CV header fields shown on the public site.
type PersonalInfo struct {
	FirstName    string `json:"firstName" gorm:"size:50;not null"`
	LastName     string `json:"lastName" gorm:"size:50;not null"`
	Title        string `json:"title" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"size:255;not null"`
	Phone        string `json:"phone,omitempty" gorm:"size:20"`
	Location     string `json:"location,omitempty" gorm:"size:100"`
	Website      string `json:"website,omitempty" gorm:"size:255"`
	Linkedin     string `json:"linkedin,omitempty" gorm:"size:255"`
	Github       string `json:"github,omitempty" gorm:"size:255"`
	ProfileImage string `json:"profileImage,omitempty" gorm:"size:255"`
	Bio          string `json:"bio" gorm:"size:500;not null"`
}

// Settings controls which profile fields the public endpoint exposes.
type Settings struct {
	IsPublic     bool `json:"isPublic" gorm:"not null;default:true"`
	ShowEmail    bool `json:"showEmail" gorm:"not null;default:true"`
	ShowPhone    bool `json:"showPhone" gorm:"not null;default:false"`
	AllowContact bool `json:"allowContact" gorm:"not null;default:true"`
}

// Skill is one entry of a skill group.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Language is a spoken language with proficiency.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// SkillSet groups skills the way the CV renders them.
type SkillSet struct {
	Technical []Skill    `json:"technical"`
	Soft      []Skill    `json:"soft"`
	Languages []Language `json:"languages"`
}

// Profile is the one-to-one CV document of a user.
type Profile struct {
	ID     uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"type:char(36);uniqueIndex;not null"`

	PersonalInfo PersonalInfo `json:"personalInfo" gorm:"embedded;embeddedPrefix:personal_"`

	Experience     []Experience    `json:"experience" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Education      []Education     `json:"education" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Projects       []Project       `json:"projects" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Certifications []Certification `json:"certifications" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`

	Skills   datatypes.JSONType[SkillSet] `json:"skills"`
	Settings Settings                     `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName joins the name fields for display.
func (p *Profile) FullName() string {
	return p.PersonalInfo.FirstName + " " + p.PersonalInfo.LastName
}

// Experience is one position on the CV. EndDate nil means ongoing.
type Experience struct {
	ID           uuid.UUID                    `json:"id" gorm:"type:char(36);primaryKey"`
	ProfileID    uuid.UUID                    `json:"-" gorm:"type:char(36);index;not null"`
	Company      string                       `json:"company" gorm:"size:100;not null"`
	Position     string                       `json:"position" gorm:"size:100;not null"`
	Location     string                       `json:"location,omitempty" gorm:"size:100"`
	StartDate    time.Time                    `json:"startDate" gorm:"not null"`
	EndDate      *time.Time                   `json:"endDate,omitempty"`
	Description  string                       `json:"description" gorm:"size:1000;not null"`
	Technologies datatypes.JSONSlice[string]  `json:"technologies"`
	IsCurrent    bool                         `json:"isCurrent" gorm:"not null;default:false"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Education is one study period on the CV.
type Education struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ProfileID   uuid.UUID  `json:"-" gorm:"type:char(36);index;not null"`
	Institution string     `json:"institution" gorm:"size:100;not null"`
	Degree      string     `json:"degree" gorm:"size:100;not null"`
	Field       string     `json:"field" gorm:"size:100;not null"`
	StartDate   time.Time  `json:"startDate" gorm:"not null"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	GPA         *float64   `json:"gpa,omitempty"`
	Description string     `json:"description,omitempty" gorm:"size:500"`
	IsCurrent   bool       `json:"isCurrent" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Education) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Project is a portfolio project entry.
type Project struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	ProfileID    uuid.UUID                   `json:"-" gorm:"type:char(36);index;not null"`
	Title        string                      `json:"title" gorm:"size:100;not null"`
	Description  string                      `json:"description" gorm:"size:500;not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	GithubURL    string                      `json:"githubUrl,omitempty" gorm:"size:255"`
	LiveURL      string                      `json:"liveUrl,omitempty" gorm:"size:255"`
	Image        string                      `json:"image,omitempty" gorm:"size:255"`
	Featured     bool                        `json:"featured" gorm:"not null;default:false"`
	StartDate    *time.Time                  `json:"startDate,omitempty"`
	EndDate      *time.Time                  `json:"endDate,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Certification is one certification entry, updated wholesale with the profile.
type Certification struct {
	ID            uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ProfileID     uuid.UUID  `json:"-" gorm:"type:char(36);index;not null"`
	Name          string     `json:"name" gorm:"size:100;not null"`
	Issuer        string     `json:"issuer" gorm:"size:100;not null"`
	IssueDate     time.Time  `json:"issueDate" gorm:"not null"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	CredentialID  string     `json:"credentialId,omitempty" gorm:"size:50"`
	CredentialURL string     `json:"credentialUrl,omitempty" gorm:"size:255"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Certification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
