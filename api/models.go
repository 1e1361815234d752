package api

import "time"

// Post is a blog post record.
type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Permalink string    `json:"permalink"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a portfolio project record.
type Project struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	RepoURL      string   `json:"repoUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
}

// Skill is a skills-page entry.
type Skill struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

// Certification is a certifications-page entry.
type Certification struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

// AdminUser is a console account as managed on the users page. Distinct
// from the session's UserInfo, which is the current actor only.
type AdminUser struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	AccessLevel string `json:"accessLevel"`
	IsActive    bool   `json:"isActive"`
}

// Settings is the site-wide settings document.
type Settings struct {
	SiteTitle       string `json:"siteTitle"`
	SiteDescription string `json:"siteDescription"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
}

// ContactMessage is an inbound contact-form message.
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a console notification entry.
type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityLogEntry is one row of the dashboard activity log viewer.
type ActivityLogEntry struct {
	ID        string    `json:"_id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MediaItem is an uploaded image in the media library.
type MediaItem struct {
	PublicID  string    `json:"publicId"`
	URL       string    `json:"url"`
	Format    string    `json:"format,omitempty"`
	Bytes     int64     `json:"bytes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
